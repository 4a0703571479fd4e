// Package port defines interfaces for external dependencies.
package port

//go:generate mockgen -source=card_check.go -destination=mocks/mock_card_check.go -package=mocks

import (
	"context"
	"time"

	"github.com/bnema/cardver/internal/domain/entity"
)

// ManifestReader reads the canonical version from a package manifest.
//
// Implementations return an *entity.CheckError of kind ManifestReadError when
// the document is missing or malformed, and ManifestFieldMissing when it has
// no version field.
type ManifestReader interface {
	ReadVersion(ctx context.Context, path string) (string, error)
}

// ArtifactSource reads the text of a card artifact.
type ArtifactSource interface {
	ReadSource(ctx context.Context, path string) (string, error)
}

// LoadRequest describes how to load a card artifact.
type LoadRequest struct {
	// ArtifactPath is the module to evaluate.
	ArtifactPath string
	// SetupFiles run after the DOM environment is installed and before the artifact.
	SetupFiles []string
	// Aliases maps import specifiers to local paths, resolved before load.
	Aliases map[string]string
	// DOM installs the browser environment emulation when true.
	DOM bool
	// Timeout bounds the whole load; zero means no bound.
	Timeout time.Duration
}

// LoadResult carries side information observed while loading an artifact.
type LoadResult struct {
	// DefinedElements lists custom element names the artifact defined, in order.
	DefinedElements []string
}

// ArtifactLoader evaluates a card artifact and returns the registrations its
// load-time side effects produced. The registry is fresh for every call.
type ArtifactLoader interface {
	Load(ctx context.Context, req LoadRequest) (*entity.CardRegistry, *LoadResult, error)
}

// CheckRunRepository persists consistency check runs.
type CheckRunRepository interface {
	Save(ctx context.Context, run *entity.CheckRun) error
	GetRecent(ctx context.Context, limit int) ([]*entity.CheckRun, error)
	FindByID(ctx context.Context, id string) (*entity.CheckRun, error)
}
