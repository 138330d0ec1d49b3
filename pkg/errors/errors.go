package intake_errors

import (
	"errors"
)

// Common errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotImage           = errors.New("file must be an image")
	ErrTooLarge           = errors.New("file too large")
	ErrAlreadyExists      = errors.New("already exists")
	ErrUploadFailed       = errors.New("upload failed")
	ErrPublishFailed      = errors.New("publish failed")
	ErrSecretMissing      = errors.New("secret not resolved")
	ErrUnsupportedBackend = errors.New("unsupported backend")
)
