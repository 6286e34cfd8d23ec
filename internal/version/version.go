// Package version holds the toolchain version and compatibility checks.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Current is the toolchain version string
const Current = "0.1.0"

// Language is the language revision the front-end accepts
const Language = "0.1.0"

var current = semver.MustParse(Current)

// Semver returns the parsed toolchain version
func Semver() *semver.Version {
	return current
}

// CompatibleWith reports whether the toolchain satisfies a caller-supplied
// version constraint such as ">= 0.1, < 1.0".
func CompatibleWith(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	return c.Check(current), nil
}

// String returns the human-readable version line
func String() string {
	return fmt.Sprintf("aeon version %s (language %s)", Current, Language)
}
