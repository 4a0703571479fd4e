// Package jsruntime loads card artifacts in an embedded JavaScript runtime
// and captures the registrations they perform at load time.
package jsruntime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grafana/sobek"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/logging"
)

// Loader implements port.ArtifactLoader using the sobek JavaScript runtime.
// Every Load gets a fresh runtime, so no state leaks between runs.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load evaluates the artifact as an ES module and returns the cards it
// pushed onto window.customCards.
func (l *Loader) Load(ctx context.Context, req port.LoadRequest) (*entity.CardRegistry, *port.LoadResult, error) {
	log := logging.WithComponent(ctx, "jsruntime").With().
		Str("artifact", req.ArtifactPath).
		Logger()

	rt := sobek.New()
	stop := bound(ctx, rt, req.Timeout)
	defer stop()

	if err := installConsole(rt, &log); err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}
	if req.DOM {
		if err := installDOM(rt); err != nil {
			return nil, nil, loadError(req.ArtifactPath, err)
		}
	}

	for _, setup := range req.SetupFiles {
		src, err := os.ReadFile(setup)
		if err != nil {
			return nil, nil, loadError(req.ArtifactPath, fmt.Errorf("read setup file: %w", err))
		}
		if _, err := rt.RunScript(setup, string(src)); err != nil {
			return nil, nil, loadError(req.ArtifactPath, fmt.Errorf("setup file %s: %w", setup, err))
		}
		log.Debug().Str("setup_file", setup).Msg("setup file executed")
	}

	path, err := filepath.Abs(req.ArtifactPath)
	if err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}

	res := newResolver(req.Aliases)
	mod, err := res.load(path)
	if err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}
	if err := mod.Link(); err != nil {
		return nil, nil, loadError(req.ArtifactPath, fmt.Errorf("link: %w", err))
	}
	promise, err := evaluate(rt, mod)
	if err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}
	if err := settle(rt, promise); err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}

	registry, err := collectRegistrations(rt)
	if err != nil {
		return nil, nil, loadError(req.ArtifactPath, err)
	}
	defined := definedElements(rt)

	log.Debug().
		Int("registrations", registry.Len()).
		Strs("defined_elements", defined).
		Msg("artifact loaded")

	return registry, &port.LoadResult{DefinedElements: defined}, nil
}

// bound interrupts the runtime when ctx ends or the timeout elapses.
func bound(ctx context.Context, rt *sobek.Runtime, timeout time.Duration) func() {
	stopCtx := context.AfterFunc(ctx, func() {
		rt.Interrupt(ctx.Err())
	})

	var timer *time.Timer
	if timeout > 0 {
		timer = time.AfterFunc(timeout, func() {
			rt.Interrupt(fmt.Errorf("artifact load exceeded %s", timeout))
		})
	}

	return func() {
		stopCtx()
		if timer != nil {
			timer.Stop()
		}
	}
}

func evaluate(rt *sobek.Runtime, mod *sobek.SourceTextModuleRecord) (p *sobek.Promise, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluation aborted: %v", r)
		}
	}()
	return mod.Evaluate(rt), nil
}

// settle waits for the module evaluation promise. Without top-level await it
// is already settled; otherwise pending jobs run when the runtime next leaves
// a top-level call.
func settle(rt *sobek.Runtime, p *sobek.Promise) error {
	if p.State() == sobek.PromiseStatePending {
		if _, err := rt.RunString("undefined"); err != nil {
			return err
		}
	}

	switch p.State() {
	case sobek.PromiseStateRejected:
		return fmt.Errorf("evaluation failed: %s", p.Result().String())
	case sobek.PromiseStatePending:
		return errors.New("evaluation did not settle")
	}
	return nil
}

func loadError(path string, err error) error {
	return &entity.CheckError{
		Kind:   entity.KindArtifactLoad,
		Source: entity.VersionSourceRegistration,
		Path:   path,
		Err:    err,
	}
}
