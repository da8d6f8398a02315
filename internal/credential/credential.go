// Package credential loads the NuGet API key from a local text file.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissing is returned when the API key file is absent, unreadable or empty.
var ErrMissing = errors.New("nuget API key is not available")

// APIKey is an opaque secret. Its String and GoString methods never reveal it,
// so it can be passed around without leaking into logs by accident.
type APIKey struct {
	value string
}

// Load reads the API key stored in path. Surrounding whitespace, including the
// trailing newline most editors add, is dropped.
func Load(path string) (APIKey, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return APIKey{}, fmt.Errorf("%w: read %s: %w", ErrMissing, path, err)
	}

	value := strings.TrimSpace(string(contents))
	if value == "" {
		return APIKey{}, fmt.Errorf("%w: %s is empty", ErrMissing, path)
	}

	return APIKey{value: value}, nil
}

// Reveal returns the raw key for use as a command argument.
func (k APIKey) Reveal() string {
	return k.value
}

// String implements fmt.Stringer with a redacted value.
func (k APIKey) String() string {
	return "***"
}

// GoString implements fmt.GoStringer with a redacted value.
func (k APIKey) GoString() string {
	return "credential.APIKey{***}"
}
