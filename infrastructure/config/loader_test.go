package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalabar794/landgenai/infrastructure/config"
)

type sample struct {
	Server struct {
		Port    int           `env:"SAMPLE_PORT"    yaml:"port"`
		Timeout time.Duration `env:"SAMPLE_TIMEOUT" yaml:"timeout"`
	} `yaml:"server"`
	Name    string   `env:"SAMPLE_NAME"    yaml:"name"`
	Enabled bool     `env:"SAMPLE_ENABLED" yaml:"enabled"`
	Tags    []string `env:"SAMPLE_TAGS"    yaml:"tags"`
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	path := writeYAML(t, "name: yaml-name\nserver:\n  port: 9000\n  timeout: 5s\n")

	cfg, err := config.Load[sample](path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-name", cfg.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SAMPLE_PORT", "7000")
	t.Setenv("SAMPLE_TIMEOUT", "250ms")
	t.Setenv("SAMPLE_ENABLED", "yes")
	t.Setenv("SAMPLE_TAGS", "a, b ,c")

	path := writeYAML(t, "server:\n  port: 9000\n")

	cfg, err := config.Load[sample](path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.Timeout)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
}

func TestLoad_MissingFileUsesZeroValue(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := config.Load[sample](filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := config.Load[sample](writeYAML(t, "server: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadWithDefaults_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SAMPLE_NAME", "from-env")

	cfg, err := config.LoadWithDefaults[sample](writeYAML(t, "{}\n"), func(s *sample) {
		if s.Server.Port == 0 {
			s.Server.Port = 8080
		}
		s.Name = "from-defaults"
	})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoad_EnvFileIsApplied(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("SAMPLE_NAME_FROM_FILE=dotenv\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { _ = os.Unsetenv("SAMPLE_NAME_FROM_FILE") })

	_, err := config.Load[sample](writeYAML(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "dotenv", os.Getenv("SAMPLE_NAME_FROM_FILE"))
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/landgenai.yml")
	assert.Equal(t, "/etc/landgenai.yml", config.GetConfigPath("config.yml"))
}

func TestValidationError_Format(t *testing.T) {
	err := config.ValidatePort("service.port", 0)
	require.Error(t, err)
	assert.Equal(t, "service.port: must be between 1 and 65535", err.Error())

	assert.NoError(t, config.ValidateOneOf("service.environment", "test", "development", "production", "test"))
	assert.Error(t, config.ValidateOneOf("service.environment", "staging", "development", "production", "test"))
	assert.Error(t, config.ValidateLogLevel("loud"))
	assert.Error(t, config.ValidatePositive("anthropic.max_tokens", 0))
}
