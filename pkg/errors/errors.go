package mb_errors

import (
	"errors"
)

// Common errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidParameter = errors.New("invalid query parameter")
	ErrRateLimited      = errors.New("rate limited")
	ErrAlreadyExists    = errors.New("already exists")
)
