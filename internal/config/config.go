// Package config loads launcher settings from config.toml and LAUNCHER_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName          = "launcher"
	configName       = "config"
	configType       = "toml"
	envPrefix        = "LAUNCHER"
	defaultRegistry  = "Credentials.dat"
	defaultLogFormat = "text"
)

const (
	RegistryPathKey   = "registry.path"
	RefreshSkewKey    = "auth.refresh_skew"
	NetIntervalKey    = "net.interval"
	NetMailboxKey     = "net.mailbox"
	NetTimeoutKey     = "net.timeout"
	NetProxyKey       = "net.proxy"
	NetUserAgentKey   = "net.user_agent"
	LogFormatKey      = "log.format"
	LogLevelKey       = "log.level"
	SecretsBackendKey = "secrets.backend"
)

const (
	BackendKeyring = "keyring"
	BackendPass    = "pass"
)

type Config struct {
	Dir          string
	RegistryPath string
	RefreshSkew  time.Duration
	Net          NetConfig
	Log          LogConfig
	Secrets      SecretsConfig
}

type NetConfig struct {
	Interval  time.Duration
	Mailbox   int
	Timeout   time.Duration
	Proxy     string
	UserAgent string
}

type LogConfig struct {
	Format string
	Level  string
}

type SecretsConfig struct {
	Backend string
}

// Dir returns the launcher configuration directory, honouring
// XDG_CONFIG_HOME and falling back to ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}

// Load reads config.toml from the launcher config directory, if present, and
// overlays LAUNCHER_* environment variables. A nil cfg uses a fresh viper.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(RegistryPathKey, filepath.Join(dir, defaultRegistry))
	cfg.SetDefault(NetIntervalKey, time.Second)
	cfg.SetDefault(NetMailboxKey, 20)
	cfg.SetDefault(NetTimeoutKey, 30*time.Second)
	cfg.SetDefault(NetProxyKey, "")
	cfg.SetDefault(NetUserAgentKey, "")
	cfg.SetDefault(LogFormatKey, defaultLogFormat)
	cfg.SetDefault(LogLevelKey, "info")
	cfg.SetDefault(SecretsBackendKey, BackendKeyring)
	cfg.SetDefault(RefreshSkewKey, 5*time.Minute)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	c := Config{
		Dir:          dir,
		RegistryPath: cfg.GetString(RegistryPathKey),
		RefreshSkew:  cfg.GetDuration(RefreshSkewKey),
		Net: NetConfig{
			Interval:  cfg.GetDuration(NetIntervalKey),
			Mailbox:   cfg.GetInt(NetMailboxKey),
			Timeout:   cfg.GetDuration(NetTimeoutKey),
			Proxy:     cfg.GetString(NetProxyKey),
			UserAgent: cfg.GetString(NetUserAgentKey),
		},
		Log: LogConfig{
			Format: strings.ToLower(cfg.GetString(LogFormatKey)),
			Level:  cfg.GetString(LogLevelKey),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(cfg.GetString(SecretsBackendKey)),
		},
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.RegistryPath) == "" {
		return errors.New("registry path is empty")
	}
	if c.Net.Interval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", NetIntervalKey, c.Net.Interval)
	}
	if c.Net.Mailbox <= 0 {
		return fmt.Errorf("%s must be positive, got %d", NetMailboxKey, c.Net.Mailbox)
	}
	if c.Net.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", NetTimeoutKey, c.Net.Timeout)
	}
	if c.RefreshSkew < 0 {
		return fmt.Errorf("%s must not be negative, got %s", RefreshSkewKey, c.RefreshSkew)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s must be text or json, got %q", LogFormatKey, c.Log.Format)
	}
	switch c.Secrets.Backend {
	case BackendKeyring, BackendPass:
	default:
		return fmt.Errorf("%s must be %s or %s, got %q", SecretsBackendKey, BackendKeyring, BackendPass, c.Secrets.Backend)
	}
	return nil
}
