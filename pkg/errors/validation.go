package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength bounds node labels. Open Food Facts category tags stay
// well below it; anything longer is almost certainly a parsing accident.
const MaxLabelLength = 256

// ValidateLabel checks that a node label is usable as a tree identifier.
//
// The rules are intentionally small:
//   - No empty or whitespace-only labels
//   - No control characters (including newlines and null bytes)
//   - Maximum length of [MaxLabelLength] characters
//
// Labels are otherwise free text: "Fruits & Vegetables" and "5-Hour Energy"
// are both valid.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if utf8.RuneCountInString(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains control characters", label)
		}
	}

	return nil
}

// ValidatePath validates a local file path given on the command line or in
// configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// FormatFromPath returns the lower-cased file extension of path without the
// leading dot, mapping "yml" to "yaml". It returns an INVALID_FORMAT error
// when the extension is not one of allowed.
func FormatFromPath(path string, allowed ...string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = "yaml"
	}
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", New(ErrCodeInvalidFormat, "unsupported file extension %q (want one of %s)", filepath.Ext(path), strings.Join(allowed, ", "))
}
