package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("rmsctl", pflag.ContinueOnError)
	flags.String("server", DefaultServerURL, "")
	flags.String("session-file", "", "")
	flags.Duration("timeout", 10*time.Second, "")
	flags.Bool("debug", false, "")
	flags.String("output", "table", "")
	flags.Bool("non-interactive", false, "")
	return flags
}

// isolate points XDG_CONFIG_HOME at an empty directory and clears RMS_*.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"RMS_SERVER_URL", "RMS_SESSION_FILE", "RMS_TIMEOUT", "RMS_DEBUG", "RMS_OUTPUT", "RMS_NON_INTERACTIVE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	settings, err := Load(testFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, settings.ServerURL)
	assert.Equal(t, 10*time.Second, settings.Timeout)
	assert.Equal(t, output.FormatTable, settings.Output)
	assert.False(t, settings.Debug)
	assert.False(t, settings.NonInteractive)
	assert.Empty(t, settings.ConfigFile)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("RMS_SERVER_URL", "http://env:9090/api/")
	t.Setenv("RMS_TIMEOUT", "3s")
	t.Setenv("RMS_DEBUG", "true")
	t.Setenv("RMS_OUTPUT", "JSON")
	t.Setenv("RMS_NON_INTERACTIVE", "1")

	settings, err := Load(testFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://env:9090/api", settings.ServerURL)
	assert.Equal(t, 3*time.Second, settings.Timeout)
	assert.True(t, settings.Debug)
	assert.Equal(t, output.FormatJSON, settings.Output)
	assert.True(t, settings.NonInteractive)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rmsctl"), 0o700))
	configPath := filepath.Join(dir, "rmsctl", "config.yaml")
	content := `
server_url: "http://file:8888/api"
timeout: 20s
output: yaml
session_file: /tmp/rms-session.json
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings, err := Load(testFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://file:8888/api", settings.ServerURL)
	assert.Equal(t, 20*time.Second, settings.Timeout)
	assert.Equal(t, output.FormatYAML, settings.Output)
	assert.Equal(t, "/tmp/rms-session.json", settings.SessionFile)
	assert.Equal(t, configPath, settings.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	isolate(t)
	configPath := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server_url: http://file/api\ntimeout: 20s\n"), 0o644))
	t.Setenv("RMS_SERVER_URL", "http://env/api")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--timeout", "7s"}))

	settings, err := Load(flags, configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://env/api", settings.ServerURL, "env beats file")
	assert.Equal(t, 7*time.Second, settings.Timeout, "flag beats file")
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	isolate(t)
	_, err := Load(testFlags(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "server without scheme", args: []string{"--server", "localhost:8080"}},
		{name: "negative timeout", args: []string{"--timeout", "-1s"}},
		{name: "unknown output", args: []string{"--output", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			flags := testFlags()
			require.NoError(t, flags.Parse(tt.args))
			_, err := Load(flags, "")
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false, false).Info("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, false, true).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger(&buf, true, true).Debug("text")
	assert.Contains(t, buf.String(), "msg=text")
}

func TestConfigFromContext(t *testing.T) {
	ctx := InjectConfig(t.Context(), &GlobalConfig{Settings: Settings{ServerURL: "http://x"}})
	cfg, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "http://x", cfg.ServerURL)

	_, ok = FromContext(t.Context())
	assert.False(t, ok)
	assert.Panics(t, func() { MustFromContext(t.Context()) })
}
