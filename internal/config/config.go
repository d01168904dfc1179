package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/terraincognita07/coachdesk/internal/security"
)

const (
	defaultPort        = "8080"
	defaultLogFetchCap = 1000
	defaultPageSize    = 20
	defaultTimeout     = 15 * time.Second
)

var (
	ErrBackendURLRequired = errors.New("backend url is required")
	ErrSecretKeyInsecure  = security.ErrWeakSessionSecret
	ErrPortInvalid        = errors.New("port must be a number between 1 and 65535")
	ErrLimitInvalid       = errors.New("log fetch cap and page size must be positive")
)

type Config struct {
	BackendURL      string
	Port            string
	SecretKey       string
	SecretGenerated bool
	DBPath          string
	CookieSecure    bool
	LogLevel        string
	LogFormat       string
	LogFetchCap     int
	PageSize        int
	RequestTimeout  time.Duration
	Location        *time.Location
}

// Overrides carries command flag values; empty fields leave the loaded value alone.
type Overrides struct {
	BackendURL string
	Port       string
	DBPath     string
	LogLevel   string
	LogFormat  string
}

// Load resolves configuration with priority: flags, config file, environment, defaults.
func Load(overrides Overrides) (*Config, error) {
	v := newBaseViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return buildConfig(v, overrides)
}

func newBaseViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("coachdesk")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		v.AddConfigPath(filepath.Join(configHome, "coachdesk"))
	}
	return v
}

func buildConfig(v *viper.Viper, overrides Overrides) (*Config, error) {
	cfg := &Config{
		Port:           lookup(v, "port", "PORT", defaultPort),
		BackendURL:     lookup(v, "backend_url", "BACKEND_URL", ""),
		SecretKey:      lookup(v, "secret_key", "SECRET_KEY", ""),
		DBPath:         lookup(v, "db_path", "DB_PATH", defaultDBPath()),
		LogLevel:       lookup(v, "log_level", "LOG_LEVEL", "info"),
		LogFormat:      lookup(v, "log_format", "LOG_FORMAT", "console"),
		CookieSecure:   lookup(v, "cookie_secure", "COOKIE_SECURE", "false") == "true",
		RequestTimeout: defaultTimeout,
		Location:       time.UTC,
	}

	var err error
	if cfg.LogFetchCap, err = positiveInt(lookup(v, "log_fetch_cap", "LOG_FETCH_CAP", ""), defaultLogFetchCap); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = positiveInt(lookup(v, "page_size", "PAGE_SIZE", ""), defaultPageSize); err != nil {
		return nil, err
	}
	if raw := lookup(v, "request_timeout", "REQUEST_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid request timeout %q", raw)
		}
		cfg.RequestTimeout = timeout
	}
	if name := lookup(v, "timezone", "TZ", ""); name != "" {
		location, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", name, err)
		}
		cfg.Location = location
	}

	applyOverrides(cfg, overrides)

	cfg.BackendURL = strings.TrimSuffix(cfg.BackendURL, "/")
	if cfg.BackendURL == "" {
		return nil, ErrBackendURLRequired
	}
	if cfg.Port, err = ValidatePort(cfg.Port); err != nil {
		return nil, err
	}
	if err := resolveSecretKey(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// lookup returns the config file value, then the environment variable, then fallback.
func lookup(v *viper.Viper, key string, env string, fallback string) string {
	if v.IsSet(key) {
		return strings.TrimSpace(v.GetString(key))
	}
	if value := strings.TrimSpace(os.Getenv(env)); value != "" {
		return value
	}
	return fallback
}

func applyOverrides(cfg *Config, overrides Overrides) {
	if value := strings.TrimSpace(overrides.BackendURL); value != "" {
		cfg.BackendURL = value
	}
	if value := strings.TrimSpace(overrides.Port); value != "" {
		cfg.Port = value
	}
	if value := strings.TrimSpace(overrides.DBPath); value != "" {
		cfg.DBPath = value
	}
	if value := strings.TrimSpace(overrides.LogLevel); value != "" {
		cfg.LogLevel = value
	}
	if value := strings.TrimSpace(overrides.LogFormat); value != "" {
		cfg.LogFormat = value
	}
}

func ValidatePort(raw string) (string, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return "", ErrPortInvalid
	}
	return strconv.Itoa(port), nil
}

// resolveSecretKey rejects weak keys. An absent key is replaced with a random
// one that only lives as long as the process.
func resolveSecretKey(cfg *Config) error {
	if cfg.SecretKey == "" {
		generated, err := security.GenerateSessionSecret()
		if err != nil {
			return err
		}
		cfg.SecretKey = generated
		cfg.SecretGenerated = true
		return nil
	}
	return security.ValidateSessionSecret(cfg.SecretKey)
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrLimitInvalid, raw)
	}
	return value, nil
}

func defaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("data", "coachdesk.db")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "coachdesk", "coachdesk.db")
}
