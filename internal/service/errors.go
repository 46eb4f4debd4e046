package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation   = errors.New("validation")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

var sentinels = []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict}

func fail(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// Message returns the user-facing text of an operation error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return strings.TrimSuffix(msg, ": "+s.Error())
		}
	}
	return msg
}
