// Package common contains shared constants, sentinel errors and random
// string helpers used across webvault components.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// service specific errors
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)
