// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvProfile   = "CALMKEYS_PROFILE"
	EnvStorage   = "CALMKEYS_STORAGE"
	EnvRedisAddr = "CALMKEYS_REDIS_ADDR"
	EnvLogLevel  = "CALMKEYS_LOG_LEVEL"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Profile    *string  `toml:"profile"`
	Words      *int     `toml:"words"`
	WordList   *string  `toml:"wordlist"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakFactor *float64 `toml:"weak-factor"`
	Calm       *bool    `toml:"calm"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend       *string `toml:"backend"`
	Path          *string `toml:"path"`
	RedisAddr     *string `toml:"redis-addr"`
	RedisPassword *string `toml:"redis-password"`
	RedisDB       *int    `toml:"redis-db"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values that are already set. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat env file: %w", err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with CALMKEYS_* environment variables.
func ApplyEnv(cfg *FileConfig, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvProfile); v != "" {
		cfg.Practice.Profile = &v
	}
	if v := getenv(EnvStorage); v != "" {
		cfg.Storage.Backend = &v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		cfg.Storage.RedisAddr = &v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = &v
	}
}

// Storage is the resolved storage configuration.
type Storage struct {
	Backend       string `validate:"oneof=sqlite redis memory"`
	Path          string
	RedisAddr     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
}

// ResolveStorage fills storage defaults.
func (c FileConfig) ResolveStorage() Storage {
	s := Storage{
		Backend:   "sqlite",
		Path:      DefaultDBPath(),
		RedisAddr: "localhost:6379",
	}
	setString(&s.Backend, c.Storage.Backend)
	setString(&s.Path, c.Storage.Path)
	setString(&s.RedisAddr, c.Storage.RedisAddr)
	setString(&s.RedisPassword, c.Storage.RedisPassword)
	if c.Storage.RedisDB != nil {
		s.RedisDB = *c.Storage.RedisDB
	}
	return s
}

// Log is the resolved logging configuration.
type Log struct {
	Level string
	File  string
}

// ResolveLog fills logging defaults.
func (c FileConfig) ResolveLog() Log {
	l := Log{Level: "info", File: DefaultLogPath()}
	setString(&l.Level, c.Log.Level)
	setString(&l.File, c.Log.File)
	return l
}

func setString(target, value *string) {
	if value != nil && *value != "" {
		*target = *value
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved storage settings.
func (s Storage) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid storage config: %w", err)
	}
	return nil
}
