package app

import (
	"errors"
	"fmt"
)

// ErrNoDocument is returned when saving without an open file path.
var ErrNoDocument = errors.New("no document file to save to")

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
