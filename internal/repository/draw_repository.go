package repository

import (
	"context"
	"database/sql"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
	"github.com/unclebandit/omikuji-web/internal/model"
)

type DrawRepositoryInterface interface {
	Insert(ctx context.Context, e model.DrawEvent) error
}

// DrawRepository stores draw history. Unlike the request-scoped repositories
// it sits on a pooled handle owned by the worker.
type DrawRepository struct {
	DB *sql.DB
}

// Insert is idempotent on the event id so redelivered messages are harmless.
func (r *DrawRepository) Insert(ctx context.Context, e model.DrawEvent) error {
	query := `
        INSERT INTO fortune_draws (id, number, fortune_rank, message, fallback, drawn_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.ExecContext(ctx, query, e.ID, e.Number, e.FortuneRank, e.Message, e.Fallback, e.DrawnAt)
	return appErrors.NewStoreError("insert draw", err)
}

// Count returns the number of stored draws.
func (r *DrawRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fortune_draws`).Scan(&n); err != nil {
		return 0, appErrors.NewStoreError("count draws", err)
	}
	return n, nil
}
