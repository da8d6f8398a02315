package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// ErrIO is returned when the manifest cannot be read or written.
var ErrIO = errors.New("manifest I/O failure")

// File is a manifest on disk. It holds no open handle between calls;
// every operation opens, works on and closes the file on its own.
type File struct {
	// path is the filesystem location of the manifest.
	path string
	// tag is the element name of the version field.
	tag string
}

// NewFile creates a File for the manifest at path with the version stored under tag.
func NewFile(path, tag string) *File {
	return &File{
		path: filepath.Clean(path),
		tag:  tag,
	}
}

// Path returns the cleaned manifest path.
func (f *File) Path() string {
	return f.path
}

// Read loads the manifest and returns its version field.
func (f *File) Read(_ context.Context) (Field, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		return Field{}, fmt.Errorf("%w: read %s: %w", ErrIO, f.path, err)
	}

	return Parse(string(contents), f.tag)
}

// Bump increments the patch component of the version field and writes the
// manifest back in place. The file is left untouched when the field is malformed.
// A failed write reported as ErrIO may leave the manifest truncated or partially written.
// The caller must make sure nobody else writes the manifest meanwhile.
func (f *File) Bump(_ context.Context) (previous, next *semver.Version, err error) {
	handle, err := os.OpenFile(f.path, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %w", ErrIO, f.path, err)
	}

	defer func() {
		if closeErr := handle.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrIO, f.path, closeErr)
		}
	}()

	raw, err := io.ReadAll(handle)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %w", ErrIO, f.path, err)
	}

	contents := string(raw)

	field, err := Parse(contents, f.tag)
	if err != nil {
		return nil, nil, err
	}

	previous = field.Version

	next, err = NextPatch(previous)
	if err != nil {
		return nil, nil, err
	}

	if err = overwrite(handle, Replace(contents, field, f.tag, next)); err != nil {
		return nil, nil, fmt.Errorf("%w: write %s: %w", ErrIO, f.path, err)
	}

	return previous, next, nil
}

// overwrite replaces the whole content of an open file.
func overwrite(handle *os.File, contents string) error {
	if err := handle.Truncate(0); err != nil {
		return err
	}

	n, err := handle.WriteAt([]byte(contents), 0)
	if err != nil {
		return err
	}

	if n != len(contents) {
		return io.ErrShortWrite
	}

	return handle.Sync()
}
