// Package config loads and validates the cardver harness configuration.
package config

import "time"

// Config represents the complete harness configuration.
type Config struct {
	// Manifest is the package manifest holding the declared version.
	Manifest string `mapstructure:"manifest" yaml:"manifest" toml:"manifest" json:"manifest" jsonschema:"default=package.json"`
	// Artifact is the built card module. A glob must match exactly one file.
	Artifact string `mapstructure:"artifact" yaml:"artifact" toml:"artifact" json:"artifact"`
	// CardType is the custom element type the artifact registers. Optional
	// when the artifact defines a single element.
	CardType string `mapstructure:"card_type" yaml:"card_type" toml:"card_type" json:"card_type,omitempty"`
	// VersionConstant is the name of the embedded version constant.
	VersionConstant string `mapstructure:"version_constant" yaml:"version_constant" toml:"version_constant" json:"version_constant" jsonschema:"default=CARD_VERSION"`
	// Placeholder is the version value that is never accepted.
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder" toml:"placeholder" json:"placeholder" jsonschema:"default=0.0.0"`

	Environment EnvironmentConfig `mapstructure:"environment" yaml:"environment" toml:"environment" json:"environment"`
	Aliases     []AliasConfig     `mapstructure:"aliases" yaml:"aliases" toml:"aliases" json:"aliases,omitempty"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	History     HistoryConfig     `mapstructure:"history" yaml:"history" toml:"history" json:"history"`
	Watch       WatchConfig       `mapstructure:"watch" yaml:"watch" toml:"watch" json:"watch"`

	// baseDir is the directory relative paths are resolved against.
	baseDir string
}

// EnvironmentConfig holds settings for the emulated browser environment
// the artifact is loaded into.
type EnvironmentConfig struct {
	DOM bool `mapstructure:"dom" yaml:"dom" toml:"dom" json:"dom" jsonschema:"default=true"`
	// SetupFiles run after the DOM shim and before the artifact, in order.
	SetupFiles []string      `mapstructure:"setup_files" yaml:"setup_files" toml:"setup_files" json:"setup_files,omitempty"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" toml:"timeout" json:"timeout" jsonschema:"type=string,default=5s"`
}

// AliasConfig maps a module specifier to a local file or a builtin module.
type AliasConfig struct {
	Specifier string `mapstructure:"specifier" yaml:"specifier" toml:"specifier" json:"specifier"`
	Target    string `mapstructure:"target" yaml:"target" toml:"target" json:"target"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// HistoryConfig controls persistence of check runs.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" toml:"path" json:"path,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce" toml:"debounce" json:"debounce" jsonschema:"type=string,default=200ms"`
}

// BaseDir returns the directory relative paths were resolved against.
func (c *Config) BaseDir() string {
	return c.baseDir
}

// AliasMap returns the aliases keyed by specifier.
func (c *Config) AliasMap() map[string]string {
	if len(c.Aliases) == 0 {
		return nil
	}
	m := make(map[string]string, len(c.Aliases))
	for _, a := range c.Aliases {
		m[a.Specifier] = a.Target
	}
	return m
}
