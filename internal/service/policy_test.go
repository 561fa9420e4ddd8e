package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
)

func TestMaskedFallback(t *testing.T) {
	v := 5
	got, used := maskedFallback(&v, nil, 11)
	assert.Equal(t, 5, got)
	assert.False(t, used)

	got, used = maskedFallback[int](nil, nil, 11)
	assert.Equal(t, 11, got)
	assert.True(t, used)

	got, used = maskedFallback(&v, errors.New("x"), 11)
	assert.Equal(t, 11, got)
	assert.True(t, used)
}

func TestSurfacedError(t *testing.T) {
	got, err := surfacedError([]int{1}, nil, "op")
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	got, err = surfacedError([]int{1}, errors.New("boom"), "op")
	assert.Nil(t, got)
	assert.EqualError(t, err, "op: boom")

	storeErr := appErrors.NewStoreError("list customers", errors.New("boom"))
	_, err = surfacedError([]int{1}, storeErr, "op")
	assert.Equal(t, storeErr, err)
}
