package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in config.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type AppConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Key     string      `yaml:"key"`
	Redis   RedisConfig `yaml:"redis"`
}

type PolicyConfig struct {
	Path string `yaml:"path"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	Policy  PolicyConfig  `yaml:"policy"`
}

type Config struct {
	BaseURL string
	// RequestTimeout zero means no timeout: in-flight requests are never
	// aborted, callers abandon responses they no longer want.
	RequestTimeout time.Duration
	LogLevel       string

	StorageBackend string
	TokenPath      string
	TokenKey       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	PolicyPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the config file named by TERMBRIDGE_CONFIG (default
// config/config.yml) and applies environment-variable overrides. A missing
// file is not an error; the client runs on defaults.
func Load() (*Config, error) {
	configFile := &ConfigFile{}
	path := env("TERMBRIDGE_CONFIG", "config/config.yml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, configFile); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{
		BaseURL:        env("TERMBRIDGE_BASE_URL", configFile.App.BaseURL),
		LogLevel:       env("TERMBRIDGE_LOG_LEVEL", configFile.App.LogLevel),
		StorageBackend: env("TERMBRIDGE_STORAGE_BACKEND", configFile.Storage.Backend),
		TokenPath:      env("TERMBRIDGE_TOKEN_PATH", configFile.Storage.Path),
		TokenKey:       env("TERMBRIDGE_TOKEN_KEY", configFile.Storage.Key),
		RedisAddr:      env("TERMBRIDGE_REDIS_ADDR", configFile.Storage.Redis.Addr),
		RedisPassword:  env("TERMBRIDGE_REDIS_PASSWORD", configFile.Storage.Redis.Password),
		RedisDB:        configFile.Storage.Redis.DB,
		PolicyPath:     env("TERMBRIDGE_POLICY_PATH", configFile.Policy.Path),
	}

	if v := os.Getenv("TERMBRIDGE_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TERMBRIDGE_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	timeout := env("TERMBRIDGE_REQUEST_TIMEOUT", configFile.App.RequestTimeout)
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid request timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendFile
	}
	if cfg.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.TokenPath = filepath.Join(home, ".termbridge", "access_token")
	}
	if cfg.TokenKey == "" {
		cfg.TokenKey = "termbridge:access_token"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
}
