package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("login id or email already registered")
	ErrNotFound      = errors.New("account not found")
	ErrInvalidInput  = errors.New("invalid input")
)
