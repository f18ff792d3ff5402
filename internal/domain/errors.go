package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrPasswordTooShort   = errors.New("new password must be at least 6 characters")

	// ErrCodeExhausted means the product code generator hit its retry cap
	// without finding a free code.
	ErrCodeExhausted = errors.New("product code generation exhausted")
)

// ImageSizeError reports an uploaded logo exceeding the allowed footprint.
type ImageSizeError struct {
	Width, Height       int
	MaxWidth, MaxHeight int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("image %dx%d exceeds maximum %dx%d", e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}
