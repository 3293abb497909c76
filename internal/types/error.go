package types

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; anything unrecognized becomes a 500.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrConflict        = errors.New("conflict")
)

// CustomError carries an HTTP status and a machine-readable type through
// the Fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
