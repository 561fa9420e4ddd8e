package repository

import (
	"context"
	"database/sql"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
	"github.com/unclebandit/omikuji-web/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	ListAll(ctx context.Context) ([]model.Customer, error)
}

// SQLOpener hands out a database handle scoped to one request.
type SQLOpener interface {
	Open(ctx context.Context) (*sql.DB, error)
}

// CustomerRepository opens a connection per call and closes it before returning.
type CustomerRepository struct {
	Opener SQLOpener
}

// ListAll fetches every customer ordered by id
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	conn, err := r.Opener.Open(ctx)
	if err != nil {
		return nil, appErrors.NewStoreError("connect", err)
	}
	defer conn.Close()

	query := `
        SELECT id, name, age, email, created_at
        FROM customers
        ORDER BY id ASC
    `
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, appErrors.NewStoreError("list customers", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Age, &c.Email, &c.CreatedAt); err != nil {
			return nil, appErrors.NewStoreError("scan customer", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStoreError("list customers", err)
	}
	return customers, nil
}
