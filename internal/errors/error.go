package errors

import "github.com/pkg/errors"

var (
	// identity errors
	ErrInvalidEmail = errors.New("invalid email address")

	// transport errors
	ErrConnectionTimeout = errors.New("connection timeout")
)
