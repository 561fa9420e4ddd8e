package service

import (
	"fmt"

	appErrors "github.com/unclebandit/omikuji-web/internal/errors"
)

// The fortune page must always render. The customer page reports exactly
// what went wrong.

// maskedFallback returns fallback whenever the lookup failed or produced nothing.
// The second result reports whether the fallback was used.
func maskedFallback[T any](v *T, err error, fallback T) (T, bool) {
	if err != nil || v == nil {
		return fallback, true
	}
	return *v, false
}

// surfacedError hands failures back to the caller, tagged with op unless the
// repository already did so.
func surfacedError[T any](v T, err error, op string) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	if appErrors.IsStoreError(err) {
		return zero, err
	}
	return zero, fmt.Errorf("%s: %w", op, err)
}
