package domain

import "errors"

var (
	// ErrNotFound means the id is well-formed but no record has it.
	ErrNotFound = errors.New("flight not found")
	// ErrInvalidID means the id could not be parsed at all.
	ErrInvalidID = errors.New("invalid flight id")
	// ErrValidation means a required field is missing or out of range.
	ErrValidation = errors.New("validation failed")
)
