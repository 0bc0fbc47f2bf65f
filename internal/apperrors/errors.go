// Package apperrors defines the sentinel errors shared across services and
// handlers. Services return these (possibly wrapped with %w); handlers match
// them with errors.Is to pick a status code. Anything that does not match is
// treated as an infrastructure failure and collapsed to a generic 500.
package apperrors

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrImageUpload        = errors.New("image upload failed")
)
