package domain

import "errors"

var (
	// ErrInvalidInput marks a projection input that fails validation.
	ErrInvalidInput = errors.New("invalid projection input")
	// ErrNegativeYear is returned for milestone or entity years below zero.
	ErrNegativeYear = errors.New("year cannot be negative")
	// ErrHorizonTooLong is returned when yearsToProject exceeds the configured maximum.
	ErrHorizonTooLong = errors.New("projection horizon too long")
)
