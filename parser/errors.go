package parser

import (
	"errors"
)

var (
	// ErrEmptyLine is returned for a line that holds only whitespace.
	ErrEmptyLine = errors.New("empty line")

	// ErrMalformedOperation is returned for a line that is not a valid command.
	ErrMalformedOperation = errors.New("malformed operation")
)
