// Package cmd provides Cobra CLI commands for cardver.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bnema/cardver/internal/cli"
	"github.com/bnema/cardver/internal/domain/build"
	"github.com/bnema/cardver/internal/infrastructure/config"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "cardver",
		Short: "Keep a dashboard card's versions in lockstep",
		Long: `cardver checks that the version in a card's package manifest, the
CARD_VERSION constant embedded in its built JavaScript, and the version the
card announces when it registers itself are the same release version.

The artifact is loaded in an emulated browser environment so its
self-registration runs exactly as it would in a dashboard. Any skew, a
malformed version or the 0.0.0 placeholder fails with a non-zero exit code.

Configuration is read from cardver.toml (or .yaml/.json) in the working
directory, or from --config. Every key can be set with a CARDVER_ variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "schema", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigFile: configFile,
				LogLevel:   logLevel,
				Bind:       bindFlags(cmd.Flags()),
			})
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			closeApp()
		},
	}
)

// flagKeys maps command flags to the config keys they override.
var flagKeys = map[string]string{
	"manifest":  "manifest",
	"artifact":  "artifact",
	"card-type": "card_type",
	"record":    "history.enabled",
}

func bindFlags(flags *pflag.FlagSet) func(*config.Manager) error {
	return func(mgr *config.Manager) error {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := mgr.BindFlag(key, f); err != nil {
				return err
			}
		}
		return nil
	}
}

// addTargetFlags registers the flags that override what is checked.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("manifest", "", "package manifest holding the declared version")
	cmd.Flags().String("artifact", "", "built card module (glob matching exactly one file)")
	cmd.Flags().String("card-type", "", "custom element type the card registers")
	cmd.Flags().Bool("record", false, "record the run in the history database")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: ./cardver.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cardver:", err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func closeApp() {
	if app != nil {
		_ = app.Close()
	}
}
