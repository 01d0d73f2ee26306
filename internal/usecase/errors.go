package usecase

import (
	"crypto/hmac"
	"errors"
)

var (
	// ErrMissingCode means the OAuth callback arrived without a code.
	ErrMissingCode = errors.New("authorization code is required")

	// ErrNotAuthorized means polling was attempted before any token exchange.
	ErrNotAuthorized = errors.New("not authorized: complete the OAuth install flow first")

	// ErrForbidden means the supplied shared secret did not match.
	ErrForbidden = errors.New("secret mismatch")
)

// secretsEqual does a constant-time comparison of the shared secret.
func secretsEqual(want, got string) bool {
	return hmac.Equal([]byte(want), []byte(got))
}
