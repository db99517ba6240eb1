// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not owned
	// by the requester. The two cases are never distinguished at the boundary.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates malformed caller input.
	ErrValidation = errors.New("validation")
)

// Token decode failures. They wrap ErrUnauthorized so transports map them
// uniformly while logs keep the precise reason.
var (
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrBadSignature   = fmt.Errorf("%w: bad signature", ErrUnauthorized)
)

// Identity resolution failures, in short-circuit order.
var (
	ErrInvalidToken      = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrWrongTokenType    = fmt.Errorf("%w: wrong token type", ErrUnauthorized)
	ErrMalformedSubject  = fmt.Errorf("%w: malformed subject", ErrUnauthorized)
	ErrPrincipalNotFound = fmt.Errorf("%w: principal not found", ErrUnauthorized)
)

// Validationf wraps ErrValidation with a field-level detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
