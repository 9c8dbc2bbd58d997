package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/config"
	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/game"
	"github.com/vovakirdan/tui-turnip/internal/locale"
	"github.com/vovakirdan/tui-turnip/internal/platform/tui"
	"github.com/vovakirdan/tui-turnip/internal/progress"
	"github.com/vovakirdan/tui-turnip/internal/storage"
)

// appEnv is everything a command needs: config, logger, catalogs and the
// opened progress backend.
type appEnv struct {
	cfg     config.Config
	logger  *log.Logger
	chars   *catalog.CharacterCatalog
	levels  *catalog.LevelCatalog
	locales *locale.Catalog
	backend progress.Backend
	sqlite  *storage.SQLite // nil unless the sqlite backend is used
	closers []func() error
}

// logTarget selects where the logger writes.
type logTarget int

const (
	logToStderr logTarget = iota
	// logToFile keeps the alternate screen clean while the TUI runs.
	logToFile
)

// loadEnv reads the config, applies global flags and opens storage.
func loadEnv(target logTarget) (*appEnv, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &appEnv{cfg: cfg}
	e.logger = e.newLogger(target)
	e.logger.Debug("config loaded", "source", src, "backend", cfg.Storage.Backend)

	e.chars, e.levels, err = catalog.Load(cfg.Game.CharactersPath, cfg.Game.LevelsPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	e.locales, err = locale.Load()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load locales: %w", err)
	}

	if err := e.openBackend(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// applyFlags lets explicitly set global flags win over file and env values.
func applyFlags(cfg *config.Config) {
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
	}
	if flagDBPath != "" {
		cfg.Storage.SQLitePath = flagDBPath
	}
	if flagRedisAddr != "" {
		cfg.Storage.RedisAddr = flagRedisAddr
	}
	if flagProfile != "" {
		cfg.Game.Profile = flagProfile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
}

func (e *appEnv) newLogger(target logTarget) *log.Logger {
	var w io.Writer = os.Stderr
	if target == logToFile {
		w = io.Discard
		if path := config.ExpandHome(e.cfg.Log.File); path != "" {
			if f, err := openLogFile(path); err == nil {
				w = f
				e.closers = append(e.closers, f.Close)
			}
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "turnip",
		Level:           e.cfg.LogLevel(),
	})
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func (e *appEnv) openBackend() error {
	sc := e.cfg.Storage
	switch sc.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return fmt.Errorf("open progress database: %w", err)
		}
		e.sqlite = db
		e.backend = db
		e.closers = append(e.closers, db.Close)

	case config.BackendRedis:
		client, err := storage.NewRedisClient(sc.RedisAddr, &storage.RedisOptions{
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
		if err != nil {
			return err
		}
		r, err := storage.NewRedis(&storage.RedisConfig{Client: client, KeyPrefix: sc.RedisKeyPrefix})
		if err != nil {
			client.Close()
			return err
		}
		if err := r.Ping(context.Background()); err != nil {
			// Loads fall back to defaults until the server is reachable.
			e.logger.Warn("redis unavailable", "addr", sc.RedisAddr, "error", err)
		}
		e.backend = r
		e.closers = append(e.closers, r.Close)

	default:
		e.backend = progress.NewMemoryBackend()
	}
	return nil
}

// runtimeConfig returns the TUI settings for a w x h terminal.
func (e *appEnv) runtimeConfig(w, h int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = w, h
	if e.cfg.UI.IntroStep > 0 {
		rc.IntroStep = e.cfg.UI.IntroStep
	}
	if e.cfg.UI.AdvanceDelay > 0 {
		rc.AdvanceDelay = e.cfg.UI.AdvanceDelay
	}
	if e.cfg.UI.Theme != "" {
		rc.Theme = e.cfg.UI.Theme
	}
	return rc
}

// newController builds the controller of profile without touching its
// stored record.
func (e *appEnv) newController(ctx context.Context, profile string, obs game.Observer) (*game.Controller, *progress.Store, error) {
	store := progress.NewStore(e.backend, profile, e.logger.WithPrefix("progress"))

	deps := game.Deps{
		Characters: e.chars,
		Levels:     e.levels,
		Progress:   store,
		Locales:    e.locales,
		Curve:      e.cfg.Game.StrengthCurve,
		Observer:   obs,
		Logger:     e.logger.With("profile", profile),
	}
	if e.sqlite != nil {
		deps.Recorder = e.sqlite
	}

	ctrl, err := game.New(ctx, deps)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, store, nil
}

// factory returns the controller factory of the game screens. A profile
// without a stored record starts in the configured language; --lang always
// wins.
func (e *appEnv) factory() tui.ControllerFactory {
	return func(ctx context.Context, profile string, obs game.Observer) (*game.Controller, error) {
		ctrl, store, err := e.newController(ctx, profile, obs)
		if err != nil {
			return nil, err
		}

		switch {
		case flagLang != "":
			ctrl.ChangeLanguage(ctx, flagLang)
		case !store.Found() && e.cfg.Game.DefaultLanguage != "":
			ctrl.ChangeLanguage(ctx, e.cfg.Game.DefaultLanguage)
		}
		return ctrl, nil
	}
}

// profile returns the configured local profile.
func (e *appEnv) profile() string {
	if e.cfg.Game.Profile == "" {
		return "local"
	}
	return e.cfg.Game.Profile
}

// Close releases storage and the log file.
func (e *appEnv) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
