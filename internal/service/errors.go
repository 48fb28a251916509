package service

import "errors"

// Handlers map these to HTTP statuses with errors.Is; wrapped causes are for logs only.
var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrNotFoundOrForbidden = errors.New("record not found")
	ErrStore               = errors.New("store error")
	ErrHashing             = errors.New("hashing error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSessionNotFound     = errors.New("session not found")
)
