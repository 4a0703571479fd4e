// Package usecase contains application business logic.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/domain/version"
	"github.com/bnema/cardver/internal/logging"
)

// CheckVersionConsistencyUseCase verifies that a card's manifest version, its
// embedded version constant and its self-registration record agree.
type CheckVersionConsistencyUseCase struct {
	manifests port.ManifestReader
	artifacts port.ArtifactSource
	loader    port.ArtifactLoader
	runs      port.CheckRunRepository

	newID func() string
	now   func() time.Time
}

// NewCheckVersionConsistencyUseCase creates a new use case. runs may be nil
// when history is disabled.
func NewCheckVersionConsistencyUseCase(
	manifests port.ManifestReader,
	artifacts port.ArtifactSource,
	loader port.ArtifactLoader,
	runs port.CheckRunRepository,
) *CheckVersionConsistencyUseCase {
	return &CheckVersionConsistencyUseCase{
		manifests: manifests,
		artifacts: artifacts,
		loader:    loader,
		runs:      runs,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// CheckVersionConsistencyInput contains options for a consistency check.
type CheckVersionConsistencyInput struct {
	ManifestPath string
	ArtifactPath string

	// CardType is the registration type to inspect. When empty, the single
	// custom element the artifact defines is used.
	CardType string

	// ConstName is the embedded version constant. Defaults to CARD_VERSION.
	ConstName string

	// Placeholder is the disallowed version value. Defaults to 0.0.0.
	Placeholder string

	// Load configures artifact evaluation. ArtifactPath is filled in from above.
	Load port.LoadRequest
}

// CheckVersionConsistencyOutput contains every value read and every problem found.
type CheckVersionConsistencyOutput struct {
	RunID    string
	CardType string

	ManifestPath string
	ArtifactPath string

	// Values holds the version read from each source that could be read.
	Values map[entity.VersionSource]string

	Registrations   []entity.CardRegistration
	DefinedElements []string

	Problems []*entity.CheckError
	OK       bool

	StartedAt time.Time
	Duration  time.Duration
}

// Version returns the value read from src and whether it was read.
func (o *CheckVersionConsistencyOutput) Version(src entity.VersionSource) (string, bool) {
	v, ok := o.Values[src]
	return v, ok
}

// ReadManifestVersion returns the manifest's declared version.
func (uc *CheckVersionConsistencyUseCase) ReadManifestVersion(ctx context.Context, path string) (string, error) {
	v, err := uc.manifests.ReadVersion(ctx, path)
	if err != nil {
		return "", asCheckError(err, entity.KindManifestRead, entity.VersionSourceManifest, path)
	}
	return v, nil
}

// ExtractEmbeddedVersion reads the artifact text and returns the literal
// assigned to constName.
func (uc *CheckVersionConsistencyUseCase) ExtractEmbeddedVersion(ctx context.Context, path, constName string) (string, error) {
	if constName == "" {
		constName = version.DefaultConstName
	}

	src, err := uc.artifacts.ReadSource(ctx, path)
	if err != nil {
		return "", asCheckError(err, entity.KindArtifactRead, entity.VersionSourceEmbedded, path)
	}

	v, found := version.ExtractEmbedded(src, constName)
	if !found {
		return "", &entity.CheckError{
			Kind:    entity.KindPatternNotFound,
			Source:  entity.VersionSourceEmbedded,
			Path:    path,
			Subject: constName,
		}
	}
	return v, nil
}

// RegistrationInspection is the outcome of loading an artifact and finding its registration.
type RegistrationInspection struct {
	CardType        string
	Registration    entity.CardRegistration
	Registrations   []entity.CardRegistration
	DefinedElements []string
}

// LoadAndInspectRegistration loads the artifact, which registers itself as a
// side effect, and returns the registration matching cardType.
func (uc *CheckVersionConsistencyUseCase) LoadAndInspectRegistration(
	ctx context.Context,
	req port.LoadRequest,
	cardType string,
) (*RegistrationInspection, error) {
	registry, result, err := uc.loader.Load(ctx, req)
	if err != nil {
		return nil, asCheckError(err, entity.KindArtifactLoad, entity.VersionSourceRegistration, req.ArtifactPath)
	}

	inspection := &RegistrationInspection{
		Registrations: registry.All(),
	}
	if result != nil {
		inspection.DefinedElements = result.DefinedElements
	}

	resolved, err := resolveCardType(cardType, registry, inspection.DefinedElements)
	if err != nil {
		return inspection, &entity.CheckError{
			Kind:   entity.KindRegistrationMissing,
			Source: entity.VersionSourceRegistration,
			Path:   req.ArtifactPath,
			Err:    err,
		}
	}
	inspection.CardType = resolved

	reg, ok := registry.Find(resolved)
	if !ok {
		return inspection, &entity.CheckError{
			Kind:    entity.KindRegistrationMissing,
			Source:  entity.VersionSourceRegistration,
			Path:    req.ArtifactPath,
			Subject: resolved,
		}
	}
	inspection.Registration = reg
	return inspection, nil
}

// resolveCardType picks the declared identifier of the artifact.
func resolveCardType(cardType string, registry *entity.CardRegistry, defined []string) (string, error) {
	if cardType != "" {
		return cardType, nil
	}
	if len(defined) == 1 {
		return defined[0], nil
	}
	if types := registry.Types(); len(types) == 1 {
		return types[0], nil
	}
	return "", fmt.Errorf(
		"card type is ambiguous (defined elements %v, registered types %v); set card_type",
		defined, registry.Types(),
	)
}

// Execute reads all three versions and checks that they are equal, well formed
// and not the placeholder. Every problem is collected; when any is found the
// output is returned together with an *entity.ConsistencyError.
func (uc *CheckVersionConsistencyUseCase) Execute(
	ctx context.Context,
	input CheckVersionConsistencyInput,
) (*CheckVersionConsistencyOutput, error) {
	placeholder := input.Placeholder
	if placeholder == "" {
		placeholder = version.Placeholder
	}

	out := &CheckVersionConsistencyOutput{
		RunID:        uc.newID(),
		CardType:     input.CardType,
		ManifestPath: input.ManifestPath,
		ArtifactPath: input.ArtifactPath,
		Values:       make(map[entity.VersionSource]string, len(entity.VersionSources)),
		StartedAt:    uc.now(),
	}
	ctx = logging.WithRunID(ctx, out.RunID)
	log := logging.WithComponent(ctx, "version-check")

	if v, err := uc.ReadManifestVersion(ctx, input.ManifestPath); err != nil {
		out.addProblem(err)
	} else {
		out.Values[entity.VersionSourceManifest] = v
	}

	if v, err := uc.ExtractEmbeddedVersion(ctx, input.ArtifactPath, input.ConstName); err != nil {
		out.addProblem(err)
	} else {
		out.Values[entity.VersionSourceEmbedded] = v
	}

	req := input.Load
	req.ArtifactPath = input.ArtifactPath
	inspection, err := uc.LoadAndInspectRegistration(ctx, req, input.CardType)
	if inspection != nil {
		out.Registrations = inspection.Registrations
		out.DefinedElements = inspection.DefinedElements
		if inspection.CardType != "" {
			out.CardType = inspection.CardType
		}
	}
	if err != nil {
		out.addProblem(err)
	} else {
		out.Values[entity.VersionSourceRegistration] = inspection.Registration.Version
	}

	out.Problems = append(out.Problems, validateValues(out.Values, placeholder)...)
	out.Problems = append(out.Problems, compareValues(out.Values)...)
	out.OK = len(out.Problems) == 0
	out.Duration = uc.now().Sub(out.StartedAt)

	uc.record(ctx, out)

	if !out.OK {
		cerr := &entity.ConsistencyError{
			CardType: out.CardType,
			Values:   out.Values,
			Problems: out.Problems,
		}
		log.Debug().
			Str("card_type", out.CardType).
			Interface("kinds", cerr.Kinds()).
			Msg("version skew detected")
		return out, cerr
	}

	log.Debug().
		Str("card_type", out.CardType).
		Str("version", out.Values[entity.VersionSourceManifest]).
		Msg("versions consistent")
	return out, nil
}

func (o *CheckVersionConsistencyOutput) addProblem(err error) {
	var ce *entity.CheckError
	if errors.As(err, &ce) {
		o.Problems = append(o.Problems, ce)
		return
	}
	o.Problems = append(o.Problems, &entity.CheckError{Kind: entity.KindArtifactLoad, Err: err})
}

// validateValues checks the shape of every value that was read.
func validateValues(values map[entity.VersionSource]string, placeholder string) []*entity.CheckError {
	var problems []*entity.CheckError
	for _, src := range entity.VersionSources {
		v, ok := values[src]
		if !ok {
			continue
		}
		var ce *entity.CheckError
		if err := version.Validate(src, v, placeholder); errors.As(err, &ce) {
			problems = append(problems, ce)
		}
	}
	return problems
}

// compareValues reports every value that differs from the reference value.
// The manifest is the reference; when it could not be read the first
// remaining source is used so the others are still compared pairwise.
func compareValues(values map[entity.VersionSource]string) []*entity.CheckError {
	var (
		refSource entity.VersionSource
		ref       string
		haveRef   bool
		problems  []*entity.CheckError
	)
	for _, src := range entity.VersionSources {
		v, ok := values[src]
		if !ok {
			continue
		}
		if !haveRef {
			refSource, ref, haveRef = src, v, true
			continue
		}
		if v != ref {
			problems = append(problems, &entity.CheckError{
				Kind:     entity.KindVersionMismatch,
				Source:   src,
				Value:    v,
				Expected: ref,
				Against:  refSource,
			})
		}
	}
	return problems
}

func (uc *CheckVersionConsistencyUseCase) record(ctx context.Context, out *CheckVersionConsistencyOutput) {
	if uc.runs == nil {
		return
	}

	problems := make([]string, 0, len(out.Problems))
	for _, p := range out.Problems {
		problems = append(problems, p.Error())
	}

	run := &entity.CheckRun{
		ID:                  out.RunID,
		CardType:            out.CardType,
		ManifestPath:        out.ManifestPath,
		ArtifactPath:        out.ArtifactPath,
		ManifestVersion:     out.Values[entity.VersionSourceManifest],
		EmbeddedVersion:     out.Values[entity.VersionSourceEmbedded],
		RegistrationVersion: out.Values[entity.VersionSourceRegistration],
		OK:                  out.OK,
		Problems:            problems,
		StartedAt:           out.StartedAt,
		Duration:            out.Duration,
	}
	if err := uc.runs.Save(ctx, run); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to record check run")
	}
}

// asCheckError keeps typed check errors and wraps anything else in the given kind.
func asCheckError(err error, kind entity.CheckErrorKind, src entity.VersionSource, path string) error {
	var ce *entity.CheckError
	if errors.As(err, &ce) {
		return ce
	}
	return &entity.CheckError{Kind: kind, Source: src, Path: path, Err: err}
}
