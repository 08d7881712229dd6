package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxRoomNameLength bounds room names accepted from files and requests.
const MaxRoomNameLength = 200

// ValidateRoomName validates a program entry name.
//
// Names are free text, but they end up in output file group names and
// log lines, so the rules reject:
//   - Empty or whitespace-only names
//   - Control characters other than tab
//   - Names longer than MaxRoomNameLength characters
func ValidateRoomName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "room name cannot be empty")
	}

	if len([]rune(name)) > MaxRoomNameLength {
		return New(ErrCodeInvalidInput, "room name too long (max %d characters)", MaxRoomNameLength)
	}

	for _, r := range name {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "room name contains invalid control characters")
		}
	}

	return nil
}

// ValidateArea validates a requested area in m².
func ValidateArea(area float64) error {
	if math.IsNaN(area) || math.IsInf(area, 0) {
		return New(ErrCodeInvalidInput, "area must be a finite number")
	}
	if area <= 0 {
		return New(ErrCodeInvalidInput, "area must be positive, got %g", area)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
