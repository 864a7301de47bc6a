package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/generator"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	RegisterServerFlags(fs)
	RegisterWatchFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, generator.Options{Family: generator.FamilyDocument, SmartDefaults: true}, cfg.GenerateOptions())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	t.Setenv("SF_TEST_PORT", "9191")
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: ${SF_TEST_PORT:-7000}
logger:
  level: ${SF_TEST_LEVEL:-debug}
generate:
  family: sql
  smart_defaults: false
gateway:
  cors_allowed_origins: "http://a.test, http://b.test"
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, generator.FamilyRelational, cfg.GenerateOptions().Family)
	assert.False(t, cfg.GenerateOptions().SmartDefaults)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generate:\n  pluralize: false\n"), 0o644))
	t.Setenv("SCHEMAFORGE_GENERATE_PLURALIZE", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Generate.Pluralize)
}

func TestLoad_FlagsWin(t *testing.T) {
	t.Setenv("SCHEMAFORGE_SERVER_PORT", "7001")
	fs := newFlags(t, "--port=7002", "--family=relational", "--smart-defaults=false", "--debounce=1s")

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, 7002, cfg.Server.Port)
	assert.Equal(t, generator.FamilyRelational, cfg.GenerateOptions().Family)
	assert.False(t, cfg.Generate.SmartDefaults)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoad_UnchangedFlagsKeepEnv(t *testing.T) {
	t.Setenv("SCHEMAFORGE_SERVER_PORT", "7001")
	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoad_ConfigFlagPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logger": {"format": "console"}}`), 0o644))

	cfg, err := Load("", newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad family", func(c *Config) { c.Generate.Family = "graph" }},
		{"bad level", func(c *Config) { c.Logger.Level = "trace" }},
		{"negative rps", func(c *Config) { c.Gateway.RateLimitRPS = -1 }},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", nil)
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("SF_SET", "value")
	assert.Equal(t, "a=value b=fallback c=", expandEnvWithDefaults("a=${SF_SET:-x} b=${SF_UNSET_VAR:-fallback} c=${SF_UNSET_VAR}"))
}
