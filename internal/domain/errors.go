package domain

import "errors"

var (
	// ErrNotFound is matched by every "record does not exist" error.
	ErrNotFound = errors.New("not found")

	// ErrCityNotFound is returned when no dataset exists for a city slug.
	ErrCityNotFound = notFound("city not found")

	// ErrDateNotFound is returned when a city has no record for a date key.
	ErrDateNotFound = notFound("date not found")

	// ErrInvalidDate is returned for malformed or impossible date keys.
	ErrInvalidDate = errors.New("invalid date key")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }
