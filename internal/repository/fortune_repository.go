package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
	"github.com/unclebandit/omikuji-web/internal/model"
)

type FortuneRepositoryInterface interface {
	RandomResult(ctx context.Context) (*model.FortuneResult, error)
}

// PGXDialer opens a single pgx connection.
type PGXDialer interface {
	Connect(ctx context.Context) (*pgx.Conn, error)
}

type FortuneRepository struct {
	Dialer PGXDialer
}

// RandomResult draws one row uniformly at random. The sampling happens in
// Postgres; an empty table yields appErrors.ErrNoFortune.
func (r *FortuneRepository) RandomResult(ctx context.Context) (*model.FortuneResult, error) {
	conn, err := r.Dialer.Connect(ctx)
	if err != nil {
		return nil, appErrors.NewStoreError("connect", err)
	}
	defer conn.Close(context.Background())

	query := `
        SELECT number::text, fortune_rank, message
        FROM results
        ORDER BY random()
        LIMIT 1
    `
	var f model.FortuneResult
	if err := conn.QueryRow(ctx, query).Scan(&f.Number, &f.FortuneRank, &f.Message); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appErrors.NewStoreError("random result", appErrors.ErrNoFortune)
		}
		return nil, appErrors.NewStoreError("random result", err)
	}
	return &f, nil
}
