package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "package.json", mgr.viper.GetString("manifest"))
	assert.Equal(t, "CARD_VERSION", mgr.viper.GetString("version_constant"))
	assert.Equal(t, "0.0.0", mgr.viper.GetString("placeholder"))
	assert.True(t, mgr.viper.GetBool("environment.dom"))
	assert.Equal(t, 5*time.Second, mgr.viper.GetDuration("environment.timeout"))
	assert.Equal(t, 200*time.Millisecond, mgr.viper.GetDuration("watch.debounce"))
	assert.False(t, mgr.viper.GetBool("history.enabled"))
}

func TestLoad_TOMLResolvesPathsAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cardver.toml", `
artifact = "dist/demo-card.js"
card_type = "demo-card"

[environment]
setup_files = ["test/setup.js"]
timeout = "2s"

[[aliases]]
specifier = "https://unpkg.com/lit-element@2.4.0/lit-element.js?module"
target = "builtin:lit"

[[aliases]]
specifier = "lit-html"
target = "vendor/lit-html.js"
`)

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, filepath.Join(dir, "package.json"), cfg.Manifest)
	assert.Equal(t, filepath.Join(dir, "dist/demo-card.js"), cfg.Artifact)
	assert.Equal(t, "demo-card", cfg.CardType)
	assert.Equal(t, []string{filepath.Join(dir, "test/setup.js")}, cfg.Environment.SetupFiles)
	assert.Equal(t, 2*time.Second, cfg.Environment.Timeout)
	assert.True(t, cfg.Environment.DOM)

	aliases := cfg.AliasMap()
	assert.Equal(t, "builtin:lit", aliases["https://unpkg.com/lit-element@2.4.0/lit-element.js?module"])
	assert.Equal(t, filepath.Join(dir, "vendor/lit-html.js"), aliases["lit-html"])
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cardver.yaml", `
manifest: /abs/package.json
artifact: card.js
logging:
  level: DEBUG
  format: json
`)

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "/abs/package.json", cfg.Manifest)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cardver.toml", `artifact = "card.js"`)

	t.Setenv("CARDVER_LOG_LEVEL", "trace")
	t.Setenv("CARDVER_VERSION_CONSTANT", "BUILD_VERSION")

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "BUILD_VERSION", cfg.VersionConstant)
}

func TestLoad_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cardver.toml", `
artifact = "card.js"
card_type = "from-file"
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("card-type", "", "")
	require.NoError(t, flags.Set("card-type", "from-flag"))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.BindFlag("card_type", flags.Lookup("card-type")))
	require.NoError(t, mgr.Load())

	assert.Equal(t, "from-flag", mgr.Get().CardType)
}

func TestLoad_CommandLinePathsStayRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	ciDir := filepath.Join(dir, "ci")
	require.NoError(t, os.MkdirAll(ciDir, 0o755))
	path := writeConfig(t, ciDir, "cardver.toml", `
artifact = "build/card.js"
manifest = "package.json"
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("artifact", "", "")
	flags.String("manifest", "", "")
	require.NoError(t, flags.Set("artifact", "dist/demo-card.js"))

	t.Setenv("CARDVER_HISTORY_PATH", "state/history.sqlite")

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.BindFlag("artifact", flags.Lookup("artifact")))
	require.NoError(t, mgr.BindFlag("manifest", flags.Lookup("manifest")))
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "dist/demo-card.js", cfg.Artifact)
	assert.Equal(t, filepath.Join(ciDir, "package.json"), cfg.Manifest, "unchanged flag keeps the file value")
	assert.Equal(t, "state/history.sqlite", cfg.History.Path)
}

func TestBindFlag_NilFlag(t *testing.T) {
	mgr, err := NewManager("")
	require.NoError(t, err)
	assert.Error(t, mgr.BindFlag("artifact", nil))
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	mgr, err := NewManager(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.toml")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cardver.toml", "artifact = [unterminated")

	mgr, err := NewManager(path)
	require.NoError(t, err)
	assert.Error(t, mgr.Load())
}

func TestLoad_NoConfigFileRequiresArtifact(t *testing.T) {
	t.Chdir(t.TempDir())

	mgr, err := NewManager("")
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact is required")
	assert.Empty(t, mgr.ConfigFileUsed())
}

func TestLoad_DiscoversConfigInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cardver.toml", `artifact = "card.js"`)
	t.Chdir(dir)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.NotEmpty(t, mgr.ConfigFileUsed())
	assert.Equal(t, "card.js", filepath.Base(mgr.Get().Artifact))
}

func TestGet_BeforeLoadReturnsDefaults(t *testing.T) {
	mgr, err := NewManager("")
	require.NoError(t, err)

	cfg := mgr.Get()
	assert.Equal(t, "package.json", cfg.Manifest)
	assert.Equal(t, 5*time.Second, cfg.Environment.Timeout)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.baseDir = "/work"
	cfg.Artifact = "  dist/card.js "
	cfg.Logging.Level = " WARN "
	cfg.Logging.Format = ""
	cfg.Environment.SetupFiles = []string{"", " setup.js ", "/abs/setup.js"}
	cfg.Aliases = []AliasConfig{
		{Specifier: " lit ", Target: "builtin:lit"},
		{Specifier: "x", Target: "vendor/x.js"},
	}

	normalizeConfig(cfg, nil)

	assert.Equal(t, "/work/dist/card.js", cfg.Artifact)
	assert.Equal(t, "/work/package.json", cfg.Manifest)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, []string{"/work/setup.js", "/abs/setup.js"}, cfg.Environment.SetupFiles)
	assert.Equal(t, AliasConfig{Specifier: "lit", Target: "builtin:lit"}, cfg.Aliases[0])
	assert.Equal(t, "/work/vendor/x.js", cfg.Aliases[1].Target)
}

func TestWatch_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	mgr, err := NewManager("")
	require.NoError(t, err)
	assert.ErrorIs(t, mgr.Watch(), ErrNoConfigFile)
}

func TestWatch_ReloadsAndNotifies(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "cardver.toml", `artifact = "a.js"`)

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var got atomic.Value
	mgr.OnConfigChange(func(c *Config) { got.Store(c.CardType) })
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch(), "second call is a no-op")

	writeConfig(t, dir, "cardver.toml", "artifact = \"a.js\"\ncard_type = \"reloaded-card\"\n")

	assert.Eventually(t, func() bool {
		v, _ := got.Load().(string)
		return v == "reloaded-card"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "reloaded-card", mgr.Get().CardType)
}
