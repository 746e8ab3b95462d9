package services

import (
	"errors"
	"strings"
)

// Controllers map these with errors.Is to HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
)

var sentinels = []error{ErrValidation, ErrNotFound, ErrPreconditionFailed, ErrUnauthorized, ErrForbidden, ErrConflict}

// Message strips the sentinel prefix so "validation failed: quantity must be
// at least 1" is shown to the user as "quantity must be at least 1".
func Message(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return strings.TrimPrefix(msg, s.Error()+": ")
		}
	}
	return msg
}
