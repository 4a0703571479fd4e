package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	appName = "cardver"

	// DefaultConfigName is the config file name looked up without extension.
	DefaultConfigName = "cardver"

	defaultManifest        = "package.json"
	defaultVersionConstant = "CARD_VERSION"
	defaultPlaceholder     = "0.0.0"
	defaultTimeout         = 5 * time.Second
	defaultDebounce        = 200 * time.Millisecond
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	historyDatabaseName    = "history.sqlite"
)

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	return &Config{
		Manifest:        defaultManifest,
		VersionConstant: defaultVersionConstant,
		Placeholder:     defaultPlaceholder,
		Environment: EnvironmentConfig{
			DOM:     true,
			Timeout: defaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		History: HistoryConfig{
			Path: DefaultHistoryPath(),
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
		},
	}
}

func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("manifest", d.Manifest)
	m.viper.SetDefault("version_constant", d.VersionConstant)
	m.viper.SetDefault("placeholder", d.Placeholder)

	m.viper.SetDefault("environment.dom", d.Environment.DOM)
	m.viper.SetDefault("environment.setup_files", []string{})
	m.viper.SetDefault("environment.timeout", d.Environment.Timeout)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)

	m.viper.SetDefault("history.enabled", d.History.Enabled)
	m.viper.SetDefault("history.path", d.History.Path)

	m.viper.SetDefault("watch.debounce", d.Watch.Debounce)
}

// DefaultHistoryPath returns $XDG_DATA_HOME/cardver/history.sqlite, falling
// back to ~/.local/share when XDG_DATA_HOME is unset.
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appName, historyDatabaseName)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, historyDatabaseName)
}
