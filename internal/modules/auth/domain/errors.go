package domain

import "errors"

var (
	ErrAccountExists      = errors.New("account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidGoogleToken = errors.New("invalid google token")
	ErrInvalidInput       = errors.New("invalid input")
)
