package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "CHIRPTERM"

	DefaultAPIURL           = "https://api.chirp.social"
	DefaultNestedFetchLimit = 4
	MaxNestedFetchLimit     = 16
	DefaultRequestTimeout   = 15 * time.Second
	DefaultToastDuration    = 3 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	APIURL           string // e.g. "https://api.chirp.social"
	ConfigDir        string
	TokenPath        string // Path to file containing the access token
	UIStatePath      string
	LogPath          string // Empty disables logging
	Debug            bool
	NestedFetchLimit int
	RequestTimeout   time.Duration
	ToastDuration    time.Duration
}

// Load reads configuration from an optional config.yaml in the config
// directory and from the environment, after loading a .env file if one is
// present. Environment variables win over the config file.
//
//	CHIRPTERM_API_URL             API base URL (default: https://api.chirp.social)
//	CHIRPTERM_CONFIG_DIR          Config directory (default: ~/.config/chirpterm)
//	CHIRPTERM_TOKEN_PATH          Token file (default: <config_dir>/token)
//	CHIRPTERM_UI_STATE_PATH       UI state file (default: <config_dir>/ui_state.json)
//	CHIRPTERM_LOG_PATH            Log file (default: <config_dir>/chirpterm.log)
//	CHIRPTERM_DEBUG               Debug logging
//	CHIRPTERM_NESTED_FETCH_LIMIT  Concurrent nested reply fetches, 1..16 (default: 4)
//	CHIRPTERM_REQUEST_TIMEOUT     HTTP timeout (default: 15s)
//	CHIRPTERM_TOAST_DURATION      Notification lifetime (default: 3s)
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	v.SetDefault("config_dir", filepath.Join(home, ".config", "chirpterm"))
	configDir := v.GetString("config_dir")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("token_path", filepath.Join(configDir, "token"))
	v.SetDefault("ui_state_path", filepath.Join(configDir, "ui_state.json"))
	v.SetDefault("log_path", filepath.Join(configDir, "chirpterm.log"))
	v.SetDefault("debug", false)
	v.SetDefault("nested_fetch_limit", DefaultNestedFetchLimit)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("toast_duration", DefaultToastDuration)

	apiURL, err := normalizeAPIURL(v.GetString("api_url"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:           apiURL,
		ConfigDir:        configDir,
		TokenPath:        v.GetString("token_path"),
		UIStatePath:      v.GetString("ui_state_path"),
		LogPath:          v.GetString("log_path"),
		Debug:            v.GetBool("debug"),
		NestedFetchLimit: v.GetInt("nested_fetch_limit"),
		RequestTimeout:   v.GetDuration("request_timeout"),
		ToastDuration:    v.GetDuration("toast_duration"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that Load cannot express as defaults.
func (c Config) Validate() error {
	if c.NestedFetchLimit < 1 || c.NestedFetchLimit > MaxNestedFetchLimit {
		return fmt.Errorf("invalid %s_NESTED_FETCH_LIMIT: must be between 1 and %d", envPrefix, MaxNestedFetchLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid %s_REQUEST_TIMEOUT: must be positive", envPrefix)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("invalid %s_TOAST_DURATION: must be positive", envPrefix)
	}
	if c.TokenPath == "" {
		return fmt.Errorf("invalid %s_TOKEN_PATH: must not be empty", envPrefix)
	}
	return nil
}

func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid %s_API_URL: must be an absolute URL", envPrefix)
	}
	if parsed.Scheme != "https" && !(parsed.Scheme == "http" && isLoopback(parsed.Hostname())) {
		return "", fmt.Errorf("invalid %s_API_URL: only https is allowed", envPrefix)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
