package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	// Callers must not be able to tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyFile is returned when an upload carries no content.
	ErrEmptyFile = errors.New("file is empty or missing")

	// ErrFileNotFound is returned when a download target does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrMissingSigningKey is a configuration error raised at token issuance.
	ErrMissingSigningKey = errors.New("token signing key is empty")

	// ErrInvalidPath is returned when a folder or file name escapes the
	// storage root.
	ErrInvalidPath = errors.New("path escapes storage root")
)
