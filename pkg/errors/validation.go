package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// resourceNameRegex matches valid resource names for colors and fonts.
var resourceNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidateResourceName validates a color or font resource name.
// Names are identifiers: a letter followed by letters, digits, or
// underscores, at most 64 characters.
func ValidateResourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidResource, "resource name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidResource, "resource name too long (max 64 characters)")
	}
	if !resourceNameRegex.MatchString(name) {
		return New(ErrCodeInvalidResource, "invalid resource name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI writes artifacts to.
// It rejects paths that could escape the working tree or smuggle control
// characters into the filesystem.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
