package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

type Config struct {
	AppName string `mapstructure:"APP_NAME"`
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"APP_ENV"`
	Debug   bool   `mapstructure:"DEBUG"`

	// Point-of-sale API access. Credentials only ever come from the environment.
	SquareAccessToken  string        `mapstructure:"SQUARE_ACCESS_TOKEN"`
	SquareEnvironment  string        `mapstructure:"SQUARE_ENVIRONMENT"`
	SquareBaseURL      string        `mapstructure:"SQUARE_BASE_URL"`
	SquareLocationName string        `mapstructure:"SQUARE_LOCATION_NAME"`
	SquareTimeout      time.Duration `mapstructure:"SQUARE_TIMEOUT"`

	SyncEpoch    time.Time     `mapstructure:"SYNC_EPOCH"`
	SyncSchedule string        `mapstructure:"SYNC_SCHEDULE"`
	SyncLockTTL  time.Duration `mapstructure:"SYNC_LOCK_TTL"`
}

// DefaultSyncEpoch is where the first sales window starts on a fresh ledger.
var DefaultSyncEpoch = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func defaults() *Config {
	return &Config{
		AppName:           "inventory",
		Port:              "8080",
		Env:               "production",
		SquareEnvironment: EnvProduction,
		SquareTimeout:     30 * time.Second,
		SyncEpoch:         DefaultSyncEpoch,
		SyncSchedule:      "@every 15m",
		SyncLockTTL:       30 * time.Minute,
	}
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		cfg, err := Decode(environ())
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		AppConfig = cfg
	})
}

// Decode builds a Config from an environment map. Empty values keep their defaults.
func Decode(env map[string]string) (*Config, error) {
	cfg := defaults()
	input := make(map[string]interface{}, len(env))
	for k, v := range env {
		if strings.TrimSpace(v) != "" {
			input[k] = strings.TrimSpace(v)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		Result: cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	cfg.SquareEnvironment = strings.ToLower(cfg.SquareEnvironment)
	if cfg.SquareEnvironment != EnvSandbox && cfg.SquareEnvironment != EnvProduction {
		return nil, fmt.Errorf("SQUARE_ENVIRONMENT must be %q or %q, got %q", EnvSandbox, EnvProduction, cfg.SquareEnvironment)
	}
	if cfg.SquareTimeout <= 0 {
		return nil, fmt.Errorf("SQUARE_TIMEOUT must be positive")
	}
	cfg.SyncEpoch = cfg.SyncEpoch.UTC()
	return cfg, nil
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
