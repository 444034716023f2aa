package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Canvas bounds accepted by ValidateCanvas.
const (
	MinCanvasSize = 64
	MaxCanvasSize = 8192
)

// algorithmIDRegex matches registry identifiers such as "bubble" or "astar".
var algorithmIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateAlgorithmID validates an algorithm identifier before registry lookup.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Lowercase ASCII letters, digits, '-' and '_' only
//   - Maximum length of 64 characters
func ValidateAlgorithmID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "algorithm id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "algorithm id too long (max 64 characters)")
	}
	if !algorithmIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid algorithm id: %q", id)
	}
	return nil
}

// ValidateCanvas checks that a frame size is renderable.
func ValidateCanvas(width, height float64) error {
	if width < MinCanvasSize || height < MinCanvasSize {
		return New(ErrCodeInvalidInput, "canvas %.0fx%.0f is smaller than %dx%d", width, height, MinCanvasSize, MinCanvasSize)
	}
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return New(ErrCodeInvalidInput, "canvas %.0fx%.0f exceeds %dx%d", width, height, MaxCanvasSize, MaxCanvasSize)
	}
	return nil
}

// ValidateOutputPath validates a frame output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
