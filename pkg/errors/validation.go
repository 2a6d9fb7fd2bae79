package errors

import (
	"strings"
	"unicode"
)

// MaxDimension caps grid width and height. Larger grids are valid for the
// engine but unusable in a terminal and expensive to snapshot every frame.
const MaxDimension = 256

// ValidateDimensions checks a requested grid size.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "grid size %dx%d must be positive", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidSize, "grid size %dx%d exceeds %d", width, height, MaxDimension)
	}
	return nil
}

// ValidatePosition checks that (x, y) lies inside a width×height grid.
// name identifies the value in the message (e.g. "start").
func ValidatePosition(name string, x, y, width, height int) error {
	if x < 0 || x >= width || y < 0 || y >= height {
		return New(ErrCodeInvalidPosition, "%s (%d,%d) outside %dx%d grid", name, x, y, width, height)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}
