package services

import "errors"

// Caller-visible outcomes. Every error returned by the account and card
// services wraps at most one of these; anything else is an internal failure.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
)
