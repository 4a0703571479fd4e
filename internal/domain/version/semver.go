// Package version provides semantic version parsing and extraction of
// version literals embedded in card artifacts.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/bnema/cardver/internal/domain/entity"
)

// Placeholder is the version value a release must never ship with.
const Placeholder = "0.0.0"

// Pattern matches strict MAJOR.MINOR.PATCH versions with no prefix or suffix.
const Pattern = `^(\d+)\.(\d+)\.(\d+)$`

var semverRE = regexp.MustCompile(Pattern)

// Version represents a MAJOR.MINOR.PATCH semantic version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// IsWellFormed reports whether s has the MAJOR.MINOR.PATCH shape.
func IsWellFormed(s string) bool {
	return semverRE.MatchString(s)
}

// IsPlaceholder reports whether s is the disallowed placeholder value.
func IsPlaceholder(s string) bool {
	return s == Placeholder
}

// Parse parses a strict semantic version string.
func Parse(s string) (*Version, error) {
	matches := semverRE.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	parts := make([]int, 3)
	for i := range parts {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid version component %q: %w", matches[i+1], err)
		}
		parts[i] = n
	}

	return &Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// String returns the version as MAJOR.MINOR.PATCH.
func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions.
// Returns:
//
//	-1 if v < other
//	 0 if v == other
//	 1 if v > other
func (v *Version) Compare(other *Version) int {
	for _, pair := range [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

// Validate checks one version value read from source. The shape is checked
// before the placeholder, so "0.0" is FormatInvalid. Extra placeholders,
// such as a configured one, are rejected as well as 0.0.0.
func Validate(source entity.VersionSource, value string, placeholders ...string) error {
	if !IsWellFormed(value) {
		return &entity.CheckError{Kind: entity.KindFormatInvalid, Source: source, Value: value}
	}
	if IsPlaceholder(value) {
		return &entity.CheckError{Kind: entity.KindPlaceholderVersion, Source: source, Value: value}
	}
	for _, p := range placeholders {
		if p != "" && value == p {
			return &entity.CheckError{Kind: entity.KindPlaceholderVersion, Source: source, Value: value}
		}
	}
	return nil
}

// Skew tells whether value is "behind" or "ahead" of reference. It returns
// the empty string when either is not a strict version or they are equal.
func Skew(value, reference string) string {
	v, err := Parse(value)
	if err != nil {
		return ""
	}
	ref, err := Parse(reference)
	if err != nil {
		return ""
	}
	switch v.Compare(ref) {
	case -1:
		return "behind"
	case 1:
		return "ahead"
	}
	return ""
}
