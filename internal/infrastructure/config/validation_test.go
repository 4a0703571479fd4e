package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Artifact = "dist/card.js"
	return cfg
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing artifact", func(c *Config) { c.Artifact = "" }, "artifact is required"},
		{"empty manifest", func(c *Config) { c.Manifest = "" }, "manifest cannot be empty"},
		{"bad constant", func(c *Config) { c.VersionConstant = "CARD-VERSION" }, "version_constant"},
		{"bad placeholder", func(c *Config) { c.Placeholder = "none" }, "placeholder"},
		{"zero timeout", func(c *Config) { c.Environment.Timeout = 0 }, "environment.timeout"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"history without path", func(c *Config) {
			c.History.Enabled = true
			c.History.Path = ""
		}, "history.path"},
		{"empty alias specifier", func(c *Config) {
			c.Aliases = []AliasConfig{{Target: "builtin:lit"}}
		}, "aliases[0].specifier"},
		{"empty alias target", func(c *Config) {
			c.Aliases = []AliasConfig{{Specifier: "lit", Target: "builtin:"}}
		}, "aliases[0].target"},
		{"duplicate alias", func(c *Config) {
			c.Aliases = []AliasConfig{
				{Specifier: "lit", Target: "builtin:lit"},
				{Specifier: "lit", Target: "vendor/lit.js"},
			}
		}, "duplicate specifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateConfig_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Artifact = ""
	cfg.Logging.Format = "xml"

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "\n  - artifact is required")
	assert.Contains(t, err.Error(), "\n  - logging.format")
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "cardver configuration")
	assert.Contains(t, s, `"version_constant"`)
	assert.Contains(t, s, `"setup_files"`)
	assert.NotContains(t, s, "baseDir")
}
