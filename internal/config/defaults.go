package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-turnip/internal/engine"
)

//go:embed defaults/turnip.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			SQLitePath:     "~/.turnip/turnip.db",
			RedisAddr:      "localhost:6379",
			RedisKeyPrefix: "turnip:progress:",
		},
		Game: GameConfig{
			Profile:         "local",
			DefaultLanguage: "en",
			StrengthCurve:   engine.DefaultCurve(),
		},
		UI: UIConfig{
			IntroStep:    3500 * time.Millisecond,
			AdvanceDelay: 1500 * time.Millisecond,
			Theme:        "default",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.turnip/turnip.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
