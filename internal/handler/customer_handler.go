// internal/handler/customer_handler.go
package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/model"
	"github.com/unclebandit/omikuji-web/internal/view"
)

type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

type CustomerHandler struct {
	Service CustomerLister

	log logrus.FieldLogger
}

func NewCustomerHandler(svc CustomerLister, l logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{Service: svc, log: l}
}

// Index renders the customer table. Store failures go back to the client
// verbatim as plain text with a 500.
func (h *CustomerHandler) Index(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		logger.ForRequest(h.log, r).Errorf("❌ Error listing customers: %v", err)
		http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := view.Render(w, "customers.html", view.CustomersPage{Customers: customers}); err != nil {
		logger.ForRequest(h.log, r).Errorf("failed to render customers: %v", err)
		http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *CustomerHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
