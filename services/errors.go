package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnavailable        = errors.New("service not configured")
)

// InputError carries a message meant for the client and matches
// ErrInvalidInput under errors.Is.
type InputError struct{ Msg string }

func (e *InputError) Error() string { return e.Msg }
func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalidf(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}
