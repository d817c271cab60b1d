package domain

import "errors"

var (
	ErrNotFound      = errors.New("session not found")
	ErrAlreadyMember = errors.New("user is already a member of the session")
	ErrSessionFull   = errors.New("session is full")
	ErrForbidden     = errors.New("user is not allowed to perform the operation")
	ErrInvalidState  = errors.New("operation is not valid in the current session state")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBusy          = errors.New("session is busy")
	ErrConflict      = errors.New("session was modified concurrently")
)
