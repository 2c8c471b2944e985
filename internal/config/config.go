package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the client-side configuration used by coursectl.
type Config struct {
	BackendURL     string
	StateFile      string
	RequestTimeout time.Duration
	LogLevel       string
}

// BackendConfig configures the in-memory development backend.
type BackendConfig struct {
	Port           int
	MasterSecret   string
	GinMode        string
	TLSCertFile    string
	TLSKeyFile     string
	TokenExpiry    time.Duration
	LoginRateLimit int
	LogLevel       string
	SeedData       bool
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// LoadDotEnv loads path into the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func LoadConfig() (Config, error) {
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		BackendURL:     "http://localhost:8080",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}

	if raw := env.Getenv("BACKEND_URL"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("invalid BACKEND_URL")
		}
		cfg.BackendURL = raw
	}

	cfg.StateFile = env.Getenv("STATE_FILE")
	if cfg.StateFile == "" {
		home := env.Getenv("HOME")
		if home == "" {
			return Config{}, fmt.Errorf("STATE_FILE is required when HOME is not set")
		}
		cfg.StateFile = filepath.Join(home, ".course-manager", "state.json")
	}

	if raw := env.Getenv("REQUEST_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS")
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}

	if raw := env.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}

	return cfg, nil
}

func LoadBackendConfig() (BackendConfig, error) {
	return LoadBackendConfigFromEnv(osEnv{})
}

func LoadBackendConfigFromEnv(env Env) (BackendConfig, error) {
	cfg := BackendConfig{
		Port:           8080,
		GinMode:        "release",
		TokenExpiry:    7 * 24 * time.Hour,
		LoginRateLimit: 10,
		LogLevel:       "info",
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return BackendConfig{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	cfg.MasterSecret = env.Getenv("MASTER_SECRET")
	if cfg.MasterSecret == "" {
		return BackendConfig{}, fmt.Errorf("MASTER_SECRET is required")
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}

	cfg.TLSCertFile = env.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = env.Getenv("TLS_KEY_FILE")

	if raw := env.Getenv("TOKEN_EXPIRY_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return BackendConfig{}, fmt.Errorf("invalid TOKEN_EXPIRY_SECONDS")
		}
		cfg.TokenExpiry = time.Duration(seconds) * time.Second
	}

	if raw := env.Getenv("LOGIN_RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return BackendConfig{}, fmt.Errorf("invalid LOGIN_RATE_LIMIT")
		}
		cfg.LoginRateLimit = limit
	}

	if raw := env.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}

	if raw := env.Getenv("SEED_DATA"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return BackendConfig{}, fmt.Errorf("invalid SEED_DATA")
		}
		cfg.SeedData = seed
	}

	return cfg, nil
}
