// internal/handler/fortune_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/model"
	"github.com/unclebandit/omikuji-web/internal/view"
)

type FortuneDrawer interface {
	GetDailyFortune(ctx context.Context) model.FortuneResult
}

// FortuneHandler serves the daily fortune pages
type FortuneHandler struct {
	Service FortuneDrawer
	Now     func() time.Time

	log logrus.FieldLogger
}

func NewFortuneHandler(svc FortuneDrawer, l logrus.FieldLogger) *FortuneHandler {
	return &FortuneHandler{
		Service: svc,
		Now:     time.Now,
		log:     l,
	}
}

// Health does not touch the database.
func (h *FortuneHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Form renders the top page with today's date.
func (h *FortuneHandler) Form(w http.ResponseWriter, r *http.Request) {
	page := view.TopPage{DateText: view.DateText(h.Now())}
	if err := view.Render(w, "fortune.html", page); err != nil {
		logger.ForRequest(h.log, r).Errorf("failed to render form: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// Result accepts GET and POST. It always renders a fortune.
func (h *FortuneHandler) Result(w http.ResponseWriter, r *http.Request) {
	result := h.Service.GetDailyFortune(r.Context())
	if err := view.Render(w, "result.html", result); err != nil {
		logger.ForRequest(h.log, r).Errorf("failed to render result: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
