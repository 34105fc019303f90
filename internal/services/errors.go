package services

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Services wrap
// them with %w so handlers can use errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrPermission    = errors.New("permission denied")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("invalid credentials")
	ErrDataIntegrity = errors.New("data integrity violation")
)
