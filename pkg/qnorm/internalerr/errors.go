package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrAlignment             = errors.New("sequence alignment mismatch")
)
