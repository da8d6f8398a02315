package manifest

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// versionPattern is the grammar of the field body: INT.INT.INT.
// It rules out the prerelease, build metadata and "v" prefix semver would accept.
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)

// ParseVersion parses a MAJOR.MINOR.PATCH string.
func ParseVersion(s string) (*semver.Version, error) {
	if !versionPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrInvalidFormat, s)
	}

	version, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFormat, s, err)
	}

	return version, nil
}

// NextPatch returns v with the patch component incremented by one.
// Major and minor are never touched.
func NextPatch(v *semver.Version) (*semver.Version, error) {
	next := v.IncPatch()

	// Patch wraps around at the uint64 limit.
	if !next.GreaterThan(v) {
		return nil, fmt.Errorf("%w: patch of %s cannot be incremented", ErrInvalidFormat, v)
	}

	return &next, nil
}
