// internal/service/customer_service.go
package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/unclebandit/omikuji-web/internal/model"
	"github.com/unclebandit/omikuji-web/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
}

// ListCustomers returns every customer ordered by id ascending. Errors are
// passed through unchanged so the page can show them.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.CustomerRepo.ListAll(ctx)
	customers, err := surfacedError(rows, err, "list customers")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(customers, func(a, b model.Customer) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return customers, nil
}
