// Package semver parses and bumps semantic version strings such as release
// tags. An optional "v" prefix is preserved across bumps.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionPattern = regexp.MustCompile(
	`^(v?)(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`,
)

// Version is a parsed semantic version.
type Version struct {
	Prefix     string
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

// Parse parses s. It returns false when s is not a semantic version.
func Parse(s string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}

	major, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, false
	}
	patch, err := strconv.Atoi(m[4])
	if err != nil {
		return Version{}, false
	}

	return Version{
		Prefix:     m[1],
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		PreRelease: m[5],
		Build:      m[6],
	}, true
}

// String serializes the version, including pre-release and build metadata
// when present.
func (v Version) String() string {
	s := fmt.Sprintf("%s%d.%d.%d", v.Prefix, v.Major, v.Minor, v.Patch)
	if v.PreRelease != "" {
		s += "-" + v.PreRelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// BumpMajor returns the next major version.
func (v Version) BumpMajor() Version {
	return Version{Prefix: v.Prefix, Major: v.Major + 1}
}

// BumpMinor returns the next minor version.
func (v Version) BumpMinor() Version {
	return Version{Prefix: v.Prefix, Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Prefix: v.Prefix, Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Bump selects which component to increment.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

// String returns the flag name of the bump kind.
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// Apply returns v bumped by b. BumpNone returns v unchanged.
func (b Bump) Apply(v Version) Version {
	switch b {
	case BumpMajor:
		return v.BumpMajor()
	case BumpMinor:
		return v.BumpMinor()
	case BumpPatch:
		return v.BumpPatch()
	default:
		return v
	}
}

// Seed is the version used when there is no tag to bump from.
// It returns "" for BumpNone.
func (b Bump) Seed() string {
	switch b {
	case BumpMajor:
		return "v1.0.0"
	case BumpMinor:
		return "v0.1.0"
	case BumpPatch:
		return "v0.0.1"
	default:
		return ""
	}
}

// BumpFromFlags picks the bump kind from command-line flags.
// Major wins over minor, minor over patch.
func BumpFromFlags(major, minor, patch bool) Bump {
	switch {
	case major:
		return BumpMajor
	case minor:
		return BumpMinor
	case patch:
		return BumpPatch
	default:
		return BumpNone
	}
}

// BumpString parses s and applies b. Unparseable input is returned
// unchanged together with false.
func BumpString(s string, b Bump) (string, bool) {
	v, ok := Parse(s)
	if !ok {
		return s, false
	}
	return b.Apply(v).String(), true
}
