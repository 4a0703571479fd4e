package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	flags      map[string]*pflag.Flag
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a new configuration manager. When configFile is empty
// cardver.{toml,yaml,json} is looked up in the working directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CARDVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names for the variables people actually set in CI.
	if err := v.BindEnv("logging.level", "CARDVER_LOG_LEVEL", "CARDVER_LOGGING_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CARDVER_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CARDVER_LOG_FORMAT", "CARDVER_LOGGING_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CARDVER_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("history.path", "CARDVER_HISTORY_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind CARDVER_HISTORY_PATH: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		flags:      make(map[string]*pflag.Flag),
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// BindFlag lets a command line flag override the config key when it is set.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %s is nil", key)
	}
	if err := m.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag --%s to %s: %w", flag.Name, key, err)
	}
	m.flags[key] = flag
	return nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.build()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && m.configFile == "" {
		// No cardver.* in the working directory; flags and env must carry it.
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		configFile = m.configFile
	}
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", m.viper.ConfigFileUsed(), err)
	}
	return config, nil
}

// build unmarshals, normalizes and validates the current viper state.
func (m *Manager) build() (*Config, error) {
	config, err := m.unmarshalConfig()
	if err != nil {
		return nil, err
	}

	config.baseDir = "."
	if used := m.viper.ConfigFileUsed(); used != "" {
		config.baseDir = filepath.Dir(used)
	}
	normalizeConfig(config, m.fromCommandLine)

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// fromCommandLine reports whether key was set by a flag or an environment
// variable. Such paths are relative to the working directory, not the
// config file.
func (m *Manager) fromCommandLine(key string) bool {
	if flag, ok := m.flags[key]; ok && flag.Changed {
		return true
	}
	envName := "CARDVER_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	return os.Getenv(envName) != ""
}

// normalizeConfig trims values and resolves relative paths against the
// config file's directory, except for keys fromCommandLine claims.
func normalizeConfig(config *Config, fromCommandLine func(key string) bool) {
	resolve := func(key, p string) string {
		if fromCommandLine != nil && fromCommandLine(key) {
			return p
		}
		return config.resolvePath(p)
	}

	config.Manifest = strings.TrimSpace(config.Manifest)
	config.Artifact = strings.TrimSpace(config.Artifact)
	config.CardType = strings.TrimSpace(config.CardType)
	config.VersionConstant = strings.TrimSpace(config.VersionConstant)
	config.Placeholder = strings.TrimSpace(config.Placeholder)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	config.Manifest = resolve("manifest", config.Manifest)
	config.Artifact = resolve("artifact", config.Artifact)
	config.History.Path = resolve("history.path", strings.TrimSpace(config.History.Path))

	setup := make([]string, 0, len(config.Environment.SetupFiles))
	for _, f := range config.Environment.SetupFiles {
		if f = strings.TrimSpace(f); f != "" {
			setup = append(setup, resolve("environment.setup_files", f))
		}
	}
	config.Environment.SetupFiles = setup

	for i := range config.Aliases {
		a := &config.Aliases[i]
		a.Specifier = strings.TrimSpace(a.Specifier)
		a.Target = strings.TrimSpace(a.Target)
		if !strings.HasPrefix(a.Target, builtinPrefix) {
			a.Target = config.resolvePath(a.Target)
		}
	}
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" || c.baseDir == "." {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
