package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// VersionSource names one of the places a card version is tracked.
type VersionSource string

const (
	VersionSourceManifest     VersionSource = "manifest"
	VersionSourceEmbedded     VersionSource = "embedded"
	VersionSourceRegistration VersionSource = "registration"
)

// VersionSources lists every tracked source in reporting order.
var VersionSources = []VersionSource{
	VersionSourceManifest,
	VersionSourceEmbedded,
	VersionSourceRegistration,
}

// CheckErrorKind categorizes a consistency check failure.
type CheckErrorKind string

const (
	KindManifestRead         CheckErrorKind = "ManifestReadError"
	KindManifestFieldMissing CheckErrorKind = "ManifestFieldMissing"
	KindArtifactRead         CheckErrorKind = "ArtifactReadError"
	KindArtifactLoad         CheckErrorKind = "ArtifactLoadError"
	KindPatternNotFound      CheckErrorKind = "PatternNotFound"
	KindRegistrationMissing  CheckErrorKind = "RegistrationMissing"
	KindVersionMismatch      CheckErrorKind = "VersionMismatch"
	KindFormatInvalid        CheckErrorKind = "FormatInvalid"
	KindPlaceholderVersion   CheckErrorKind = "PlaceholderVersion"
)

var (
	ErrManifestRead         = errors.New("manifest read error")
	ErrManifestFieldMissing = errors.New("manifest version field missing")
	ErrArtifactRead         = errors.New("artifact read error")
	ErrArtifactLoad         = errors.New("artifact load error")
	ErrPatternNotFound      = errors.New("embedded version pattern not found")
	ErrRegistrationMissing  = errors.New("card registration missing")
	ErrVersionMismatch      = errors.New("version mismatch")
	ErrFormatInvalid        = errors.New("version format invalid")
	ErrPlaceholderVersion   = errors.New("placeholder version")
)

var kindSentinels = map[CheckErrorKind]error{
	KindManifestRead:         ErrManifestRead,
	KindManifestFieldMissing: ErrManifestFieldMissing,
	KindArtifactRead:         ErrArtifactRead,
	KindArtifactLoad:         ErrArtifactLoad,
	KindPatternNotFound:      ErrPatternNotFound,
	KindRegistrationMissing:  ErrRegistrationMissing,
	KindVersionMismatch:      ErrVersionMismatch,
	KindFormatInvalid:        ErrFormatInvalid,
	KindPlaceholderVersion:   ErrPlaceholderVersion,
}

// CheckError describes a single failed check.
type CheckError struct {
	Kind   CheckErrorKind
	Source VersionSource
	// Value is the offending version value, when one was read.
	Value string
	// Expected is the reference value a mismatching value was compared against.
	Expected string
	// Against names the source Expected came from.
	Against VersionSource
	// Path is the file involved, when relevant.
	Path string
	// Subject names what was looked for: a constant name or a card type.
	Subject string
	Err     error
}

func (e *CheckError) Error() string {
	if e == nil {
		return "check error"
	}

	var msg string
	switch e.Kind {
	case KindManifestRead:
		msg = fmt.Sprintf("cannot read manifest %s", e.Path)
	case KindManifestFieldMissing:
		msg = fmt.Sprintf("manifest %s has no version field", e.Path)
	case KindArtifactRead:
		msg = fmt.Sprintf("cannot read artifact %s", e.Path)
	case KindArtifactLoad:
		msg = fmt.Sprintf("cannot load artifact %s", e.Path)
	case KindPatternNotFound:
		msg = fmt.Sprintf("no `const %s = \"<version>\"` declaration in %s", e.Subject, e.Path)
	case KindRegistrationMissing:
		msg = fmt.Sprintf("no card registration with type %q after loading %s", e.Subject, e.Path)
	case KindVersionMismatch:
		against := e.Against
		if against == "" {
			against = VersionSourceManifest
		}
		msg = fmt.Sprintf("%s version %q does not match %s version %q", e.Source, e.Value, against, e.Expected)
	case KindFormatInvalid:
		msg = fmt.Sprintf("%s version %q is not a MAJOR.MINOR.PATCH version", e.Source, e.Value)
	case KindPlaceholderVersion:
		msg = fmt.Sprintf("%s version %q is a placeholder", e.Source, e.Value)
	default:
		msg = string(e.Kind)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CheckError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel error for the check kind.
func (e *CheckError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// ConsistencyError reports every problem found in one check run.
type ConsistencyError struct {
	CardType string
	Values   map[VersionSource]string
	Problems []*CheckError
}

func (e *ConsistencyError) Error() string {
	var b strings.Builder
	b.WriteString("version skew detected")
	if e.CardType != "" {
		fmt.Fprintf(&b, " for %s", e.CardType)
	}

	var found []string
	for _, src := range VersionSources {
		if v, ok := e.Values[src]; ok {
			found = append(found, fmt.Sprintf("%s=%s", src, v))
		}
	}
	if len(found) > 0 {
		b.WriteString(" (" + strings.Join(found, " ") + ")")
	}

	for _, p := range e.Problems {
		fmt.Fprintf(&b, "\n  - %s: %s", p.Kind, p.Error())
	}
	return b.String()
}

// Unwrap exposes each problem so errors.Is and errors.As see every kind.
func (e *ConsistencyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		errs = append(errs, p)
	}
	return errs
}

// Kinds returns the distinct problem kinds in report order.
func (e *ConsistencyError) Kinds() []CheckErrorKind {
	seen := make(map[CheckErrorKind]bool, len(e.Problems))
	kinds := make([]CheckErrorKind, 0, len(e.Problems))
	for _, p := range e.Problems {
		if !seen[p.Kind] {
			seen[p.Kind] = true
			kinds = append(kinds, p.Kind)
		}
	}
	return kinds
}

// CheckRun is a persisted record of one consistency check.
type CheckRun struct {
	ID                  string
	CardType            string
	ManifestPath        string
	ArtifactPath        string
	ManifestVersion     string
	EmbeddedVersion     string
	RegistrationVersion string
	OK                  bool
	Problems            []string
	StartedAt           time.Time
	Duration            time.Duration
}
