// Package config provides YAML-based configuration loading for the turnip
// game, with environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-turnip/internal/engine"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the complete application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Game    GameConfig    `yaml:"game" envPrefix:"GAME_"`
	UI      UIConfig      `yaml:"ui" envPrefix:"UI_"`
	SSH     SSHConfig     `yaml:"ssh" envPrefix:"SSH_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

// StorageConfig selects where progress and attempt history live.
type StorageConfig struct {
	Backend        string `yaml:"backend" env:"BACKEND"`
	SQLitePath     string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	RedisAddr      string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword  string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB        int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisKeyPrefix string `yaml:"redis_key_prefix" env:"REDIS_KEY_PREFIX"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Profile         string               `yaml:"profile" env:"PROFILE"`
	DefaultLanguage string               `yaml:"default_language" env:"LANGUAGE"`
	CharactersPath  string               `yaml:"characters_path" env:"CHARACTERS_PATH"`
	LevelsPath      string               `yaml:"levels_path" env:"LEVELS_PATH"`
	StrengthCurve   engine.StrengthCurve `yaml:"strength_curve"`
}

// UIConfig holds terminal front end timings and look.
type UIConfig struct {
	IntroStep    time.Duration `yaml:"intro_step" env:"INTRO_STEP"`
	AdvanceDelay time.Duration `yaml:"advance_delay" env:"ADVANCE_DELAY"`
	Theme        string        `yaml:"theme" env:"THEME"`
}

// SSHConfig configures `turnip serve`.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"ADDRESS"`
	HostKeyPath string        `yaml:"host_key_path" env:"HOST_KEY_PATH"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisAddr == "" {
		return fmt.Errorf("config: storage.redis_addr is required for the redis backend")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("config: storage.sqlite_path is required for the sqlite backend")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// LogLevel returns the configured log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
