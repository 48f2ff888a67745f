package recdex

import "github.com/kailas-cloud/recdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidPayload     = domain.ErrInvalidPayload
	ErrInvalidValue       = domain.ErrInvalidValue
	ErrInvalidCombination = domain.ErrInvalidCombination
	ErrDependency         = domain.ErrDependency
	ErrUnauthorized       = domain.ErrUnauthorized
)

// ValidationError lists every field that failed validation.
// Use errors.As() to inspect the fields.
type ValidationError = domain.ValidationError
