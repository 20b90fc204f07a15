package service

import "errors"

// Error taxonomy shared by the handlers. Every route maps these to an HTTP
// status; anything unrecognized becomes a 500 with a generic message.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrBadCredentials = errors.New("invalid credentials")
)
