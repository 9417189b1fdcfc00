package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Syam115/Resource-Management-System/cmd/rmsctl/internal/output"
	"github.com/Syam115/Resource-Management-System/pkg/sdk"
)

// EnvPrefix prefixes every environment variable rmsctl reads.
const EnvPrefix = "RMS"

// DefaultServerURL is the API root of a locally running backend.
const DefaultServerURL = "http://localhost:8080/api"

// Config keys. Flags with the same name (dashes for underscores) override
// them.
const (
	KeyServerURL      = "server_url"
	KeySessionFile    = "session_file"
	KeyTimeout        = "timeout"
	KeyDebug          = "debug"
	KeyOutput         = "output"
	KeyNonInteractive = "non_interactive"
)

var flagNames = map[string]string{
	KeyServerURL:      "server",
	KeySessionFile:    "session-file",
	KeyTimeout:        "timeout",
	KeyDebug:          "debug",
	KeyOutput:         "output",
	KeyNonInteractive: "non-interactive",
}

// ConfigDir returns $XDG_CONFIG_HOME/rmsctl, falling back to ~/.config/rmsctl.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "rmsctl")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rmsctl")
}

// Load resolves Settings with precedence flags > RMS_* environment >
// config file > defaults. configFile may be empty, in which case
// config.yaml under ConfigDir is used when present.
func Load(flags *pflag.FlagSet, configFile string) (Settings, error) {
	v := viper.New()
	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeySessionFile, "")
	v.SetDefault(KeyTimeout, sdk.DefaultTimeout)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyOutput, string(output.FormatTable))
	v.SetDefault(KeyNonInteractive, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagNames {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Settings{}, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	settings := Settings{
		ServerURL:      strings.TrimRight(v.GetString(KeyServerURL), "/"),
		SessionFile:    v.GetString(KeySessionFile),
		ConfigFile:     v.ConfigFileUsed(),
		Timeout:        v.GetDuration(KeyTimeout),
		Debug:          v.GetBool(KeyDebug),
		Output:         output.Format(strings.ToLower(v.GetString(KeyOutput))),
		NonInteractive: v.GetBool(KeyNonInteractive),
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks values that would otherwise fail late.
func (s Settings) Validate() error {
	parsed, err := url.Parse(s.ServerURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected e.g. %s", s.ServerURL, DefaultServerURL)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", s.Timeout)
	}
	if !s.Output.Valid() {
		return fmt.Errorf("unknown output format %q (expected table, json or yaml)", s.Output)
	}
	return nil
}

// RequestTimeout is Timeout, or the SDK default when unset.
func (s Settings) RequestTimeout() time.Duration {
	if s.Timeout == 0 {
		return sdk.DefaultTimeout
	}
	return s.Timeout
}
