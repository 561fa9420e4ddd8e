package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/logger"
)

func baseRouter(l logrus.FieldLogger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.GetHead)
	r.Use(logger.RequestLogger(l))
	r.Use(middleware.Recoverer)
	return r
}

// NewFortuneRouter wires the fortune service routes
func NewFortuneRouter(h *FortuneHandler, l logrus.FieldLogger) chi.Router {
	r := baseRouter(l)
	r.Get("/", h.Health)
	r.Get("/fortune", h.Form)
	r.Get("/result", h.Result)
	r.Post("/result", h.Result)
	return r
}

// NewCustomerRouter wires the customer listing routes
func NewCustomerRouter(h *CustomerHandler, l logrus.FieldLogger) chi.Router {
	r := baseRouter(l)
	r.Get("/", h.Index)
	r.Get("/healthcheck", h.Healthcheck)
	return r
}
