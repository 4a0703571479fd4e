package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bnema/cardver/internal/domain/version"
)

const builtinPrefix = "builtin:"

var identifierRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "disabled": true, "off": true,
}

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateTargets(config)...)
	validationErrors = append(validationErrors, validateEnvironment(config)...)
	validationErrors = append(validationErrors, validateAliases(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)
	validationErrors = append(validationErrors, validateWatch(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateTargets(config *Config) []string {
	var validationErrors []string
	if config.Manifest == "" {
		validationErrors = append(validationErrors, "manifest cannot be empty")
	}
	if config.Artifact == "" {
		validationErrors = append(validationErrors, "artifact is required (set it in cardver.toml or pass --artifact)")
	}
	if !identifierRE.MatchString(config.VersionConstant) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("version_constant %q is not a valid identifier", config.VersionConstant))
	}
	if !version.IsWellFormed(config.Placeholder) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("placeholder %q must be MAJOR.MINOR.PATCH", config.Placeholder))
	}
	return validationErrors
}

func validateEnvironment(config *Config) []string {
	if config.Environment.Timeout <= 0 {
		return []string{"environment.timeout must be positive"}
	}
	return nil
}

func validateAliases(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]bool, len(config.Aliases))
	for i, a := range config.Aliases {
		switch {
		case a.Specifier == "":
			validationErrors = append(validationErrors, fmt.Sprintf("aliases[%d].specifier cannot be empty", i))
		case seen[a.Specifier]:
			validationErrors = append(validationErrors, fmt.Sprintf("aliases[%d]: duplicate specifier %q", i, a.Specifier))
		}
		seen[a.Specifier] = true

		if a.Target == "" || a.Target == builtinPrefix {
			validationErrors = append(validationErrors, fmt.Sprintf("aliases[%d].target cannot be empty", i))
		}
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !validLogLevels[config.Logging.Level] {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error, disabled", config.Logging.Level))
	}
	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format %q must be console or json", config.Logging.Format))
	}
	return validationErrors
}

func validateHistory(config *Config) []string {
	if config.History.Enabled && config.History.Path == "" {
		return []string{"history.path cannot be empty when history is enabled"}
	}
	return nil
}

func validateWatch(config *Config) []string {
	if config.Watch.Debounce < 0 {
		return []string{"watch.debounce must be non-negative"}
	}
	return nil
}
