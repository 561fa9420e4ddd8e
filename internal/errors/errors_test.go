package appErrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
)

func TestStoreErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := appErrors.NewStoreError("list customers", cause)

	assert.EqualError(t, err, "list customers: connection refused")
	assert.ErrorIs(t, err, cause)
	assert.True(t, appErrors.IsStoreError(fmt.Errorf("handler: %w", err)))
}

func TestNewStoreErrorNil(t *testing.T) {
	assert.NoError(t, appErrors.NewStoreError("noop", nil))
	assert.False(t, appErrors.IsStoreError(errors.New("plain")))
}

func TestErrNoFortuneIsDetectable(t *testing.T) {
	err := appErrors.NewStoreError("random result", appErrors.ErrNoFortune)
	assert.ErrorIs(t, err, appErrors.ErrNoFortune)
}
