package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/omikuji-web/internal/db"
	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
	"github.com/unclebandit/omikuji-web/internal/repository"
)

// Nothing listens on port 1, so both connectors fail fast.
const unreachableDSN = "postgres://app:pw@127.0.0.1:1/fortune_telling?sslmode=disable&connect_timeout=1"

func TestRepositoriesReportStoreErrorsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customers := &repository.CustomerRepository{Opener: db.PQConnector{DSN: unreachableDSN}}
	list, err := customers.ListAll(ctx)
	assert.Nil(t, list)
	assert.True(t, appErrors.IsStoreError(err))

	fortunes := &repository.FortuneRepository{Dialer: db.PGXConnector{DSN: unreachableDSN}}
	f, err := fortunes.RandomResult(ctx)
	assert.Nil(t, f)
	assert.True(t, appErrors.IsStoreError(err))
	assert.NotErrorIs(t, err, appErrors.ErrNoFortune)
}
