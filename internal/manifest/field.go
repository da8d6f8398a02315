package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidFormat is returned when the version field is missing or malformed.
var ErrInvalidFormat = errors.New("invalid manifest version field")

// Field is the located version field of a manifest.
type Field struct {
	// Version is the parsed body of the field.
	Version *semver.Version
	// Raw is the exact delimited substring, tags included.
	Raw string
	// Start and End are the byte offsets of Raw inside the manifest.
	Start int
	End   int
}

// Parse locates the single <tag>MAJOR.MINOR.PATCH</tag> field in contents.
func Parse(contents, tag string) (Field, error) {
	openTag, closeTag := "<"+tag+">", "</"+tag+">"

	switch n := strings.Count(contents, openTag); {
	case n == 0:
		return Field{}, fmt.Errorf("%w: %s not found", ErrInvalidFormat, openTag)
	case n > 1:
		return Field{}, fmt.Errorf("%w: %s occurs %d times", ErrInvalidFormat, openTag, n)
	}

	start := strings.Index(contents, openTag)
	bodyStart := start + len(openTag)

	bodyLen := strings.Index(contents[bodyStart:], closeTag)
	if bodyLen < 0 {
		return Field{}, fmt.Errorf("%w: %s not closed by %s", ErrInvalidFormat, openTag, closeTag)
	}

	bodyEnd := bodyStart + bodyLen

	version, err := ParseVersion(contents[bodyStart:bodyEnd])
	if err != nil {
		return Field{}, err
	}

	end := bodyEnd + len(closeTag)

	return Field{
		Version: version,
		Raw:     contents[start:end],
		Start:   start,
		End:     end,
	}, nil
}

// Encode renders a version field with the given tag.
func Encode(tag string, v *semver.Version) string {
	return "<" + tag + ">" + v.String() + "</" + tag + ">"
}

// Replace returns contents with the field swapped for one holding v.
// Bytes outside the field are kept as is.
func Replace(contents string, field Field, tag string, v *semver.Version) string {
	return contents[:field.Start] + Encode(tag, v) + contents[field.End:]
}
