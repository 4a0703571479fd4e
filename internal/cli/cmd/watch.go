package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/cardver/internal/cli"
	"github.com/bnema/cardver/internal/cli/styles"
	"github.com/bnema/cardver/internal/infrastructure/config"
	"github.com/bnema/cardver/internal/infrastructure/watcher"
	"github.com/bnema/cardver/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the check whenever the card or its manifest changes",
	Long: `Run the check once, then again each time the manifest, the artifact, a
setup file, a local alias target or the config file changes. Bursts of
changes (a bundler rewriting its output) are debounced by watch.debounce.
When the config file is edited the watched file set is rebuilt from it.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addTargetFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	var current atomic.Pointer[config.Config]
	current.Store(app.Config)
	reloaded := make(chan struct{}, 1)
	app.Manager.OnConfigChange(func(c *config.Config) {
		current.Store(c)
		log.Info().Msg("configuration reloaded")
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err := app.Manager.Watch(); err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		return err
	}

	run := func(ctx context.Context) {
		input, err := cli.CheckInput(current.Load())
		if err != nil {
			log.Error().Err(err).Msg("cannot run check")
			return
		}
		out, _ := app.CheckUC.Execute(ctx, input)
		if out == nil {
			return
		}
		if err := writeCheck(cmd.OutOrStdout(), app.Theme, out, false); err != nil {
			log.Error().Err(err).Msg("failed to write report")
		}
	}

	var lastFiles []string
	newWatcher := func() (*watcher.Watcher, error) {
		cfg := current.Load()
		files, err := watchedFiles(app, cfg)
		if err != nil {
			if lastFiles == nil {
				return nil, err
			}
			log.Error().Err(err).Msg("cannot resolve watched files, keeping previous set")
			files = lastFiles
		}
		lastFiles = files

		w, err := watcher.New(files, cfg.Watch.Debounce)
		if err != nil {
			return nil, err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.Theme.Subtle.Render(
			fmt.Sprintf("%s watching %d files, press Ctrl+C to stop", styles.IconEye, len(w.Files()))))
		return w, nil
	}

	run(ctx)

	return watchLoop(ctx, reloaded, newWatcher, func(ctx context.Context, changed []string) {
		log.Info().Strs("changed", changed).Msg("re-running check")
		run(ctx)
	}, run)
}

// watchedFiles lists every file whose change should re-run the check.
func watchedFiles(app *cli.App, cfg *config.Config) ([]string, error) {
	input, err := cli.CheckInput(cfg)
	if err != nil {
		return nil, err
	}
	files := cli.WatchedFiles(input)
	if used := app.Manager.ConfigFileUsed(); used != "" {
		files = append(files, used)
	}
	return files, nil
}

// watchLoop runs the watcher built by newWatcher until ctx is done. Every
// signal on reloaded replaces it with a fresh one, so a reloaded config that
// moves the artifact or adds setup files is watched too; onReload then runs.
func watchLoop(
	ctx context.Context,
	reloaded <-chan struct{},
	newWatcher func() (*watcher.Watcher, error),
	onChange func(ctx context.Context, changed []string),
	onReload func(ctx context.Context),
) error {
	w, err := newWatcher()
	if err != nil {
		return err
	}

	for {
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func(w *watcher.Watcher) { done <- w.Run(runCtx, onChange) }(w)

		select {
		case <-ctx.Done():
			cancel()
			return <-done
		case err := <-done:
			cancel()
			return err
		case <-reloaded:
			cancel()
			if err := <-done; err != nil {
				return err
			}
		}

		if w, err = newWatcher(); err != nil {
			return err
		}
		onReload(ctx)
	}
}
