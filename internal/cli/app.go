// Package cli wires cardver's collaborators for the command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/application/usecase"
	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/domain/build"
	"github.com/bnema/cardver/internal/infrastructure/artifact"
	"github.com/bnema/cardver/internal/infrastructure/config"
	"github.com/bnema/cardver/internal/infrastructure/jsruntime"
	"github.com/bnema/cardver/internal/infrastructure/manifest"
	"github.com/bnema/cardver/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/cardver/internal/logging"
)

// Options controls how the App is built.
type Options struct {
	// ConfigFile is an explicit config path; empty looks up cardver.* in the working directory.
	ConfigFile string
	// LogLevel overrides logging.level when set.
	LogLevel string
	// Bind registers command line flag overrides before the config is loaded.
	Bind func(*config.Manager) error
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Runs is nil when history is disabled.
	Runs    port.CheckRunRepository
	CheckUC *usecase.CheckVersionConsistencyUseCase

	db  *sqlite.LazyDB
	ctx context.Context
}

// NewApp loads the configuration and creates the CLI application.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.Bind != nil {
		if err := opts.Bind(mgr); err != nil {
			return nil, err
		}
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.ConsoleTimeFormat,
		Output:     os.Stderr,
	})
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		ctx:     ctx,
	}
	if cfg.History.Enabled {
		app.db = sqlite.NewLazyDB(cfg.History.Path)
		app.Runs = sqlite.NewLazyCheckRunRepository(app.db)
	}
	app.CheckUC = newCheckUseCase(app.Runs)

	logger.Debug().
		Str("config", mgr.ConfigFileUsed()).
		Str("base_dir", cfg.BaseDir()).
		Bool("history", cfg.History.Enabled).
		Msg("cli initialized")
	return app, nil
}

func newCheckUseCase(runs port.CheckRunRepository) *usecase.CheckVersionConsistencyUseCase {
	return usecase.NewCheckVersionConsistencyUseCase(
		manifest.NewReader(),
		artifact.NewFileSource(),
		jsruntime.NewLoader(),
		runs,
	)
}

// Close releases all resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// CheckInput builds the consistency check input from cfg, expanding the
// artifact and setup file globs.
func CheckInput(cfg *config.Config) (usecase.CheckVersionConsistencyInput, error) {
	artifactPath, err := artifact.Resolve(cfg.Artifact)
	if err != nil {
		return usecase.CheckVersionConsistencyInput{}, err
	}
	setup, err := artifact.ExpandAll(cfg.Environment.SetupFiles)
	if err != nil {
		return usecase.CheckVersionConsistencyInput{}, fmt.Errorf("environment.setup_files: %w", err)
	}

	return usecase.CheckVersionConsistencyInput{
		ManifestPath: cfg.Manifest,
		ArtifactPath: artifactPath,
		CardType:     cfg.CardType,
		ConstName:    cfg.VersionConstant,
		Placeholder:  cfg.Placeholder,
		Load: port.LoadRequest{
			SetupFiles: setup,
			Aliases:    cfg.AliasMap(),
			DOM:        cfg.Environment.DOM,
			Timeout:    cfg.Environment.Timeout,
		},
	}, nil
}

// WatchedFiles lists every local file a check reads.
func WatchedFiles(input usecase.CheckVersionConsistencyInput) []string {
	files := []string{input.ManifestPath, input.ArtifactPath}
	files = append(files, input.Load.SetupFiles...)
	for _, target := range input.Load.Aliases {
		if !strings.HasPrefix(target, jsruntime.BuiltinPrefix) {
			files = append(files, target)
		}
	}
	return files
}
