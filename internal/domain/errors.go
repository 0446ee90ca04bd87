package domain

import "errors"

// Error taxonomy shared by the service layer. REST handlers map these to
// client errors; none are retried automatically.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("invalid state")
)
