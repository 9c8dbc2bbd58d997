package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-turnip/internal/config"
)

// withFlags sets global flags for one test.
func withFlags(t *testing.T, backend, lang string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	oldBackend, oldLang, oldDB := flagBackend, flagLang, flagDBPath
	t.Cleanup(func() { flagBackend, flagLang, flagDBPath = oldBackend, oldLang, oldDB })
	flagBackend, flagLang = backend, lang
}

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() {
		flagBackend, flagDBPath, flagRedisAddr, flagProfile, flagLogLevel = "", "", "", "", ""
	})
	flagBackend = config.BackendRedis
	flagDBPath = "/tmp/x.db"
	flagRedisAddr = "redis:6379"
	flagProfile = "alice"
	flagLogLevel = "debug"

	cfg := config.Default()
	applyFlags(&cfg)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "alice", cfg.Game.Profile)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyFlagsKeepsUnset(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg)
	assert.Equal(t, config.Default(), cfg)
}

func TestFactoryDefaultLanguage(t *testing.T) {
	withFlags(t, config.BackendMemory, "")
	env, err := loadEnv(logToStderr)
	require.NoError(t, err)
	defer env.Close()
	env.cfg.Game.DefaultLanguage = "ru"

	ctx := context.Background()
	ctrl, err := env.factory()(ctx, "new-player", nil)
	require.NoError(t, err)
	assert.Equal(t, "ru", ctrl.Language())

	// A stored choice is kept on the next start.
	ctrl.ChangeLanguage(ctx, "hy")
	ctrl, err = env.factory()(ctx, "new-player", nil)
	require.NoError(t, err)
	assert.Equal(t, "hy", ctrl.Language())
}

func TestFactoryLangFlagWins(t *testing.T) {
	withFlags(t, config.BackendMemory, "hy")
	env, err := loadEnv(logToStderr)
	require.NoError(t, err)
	defer env.Close()

	ctrl, err := env.factory()(context.Background(), "p", nil)
	require.NoError(t, err)
	assert.Equal(t, "hy", ctrl.Language())
}

func TestLoadEnvSQLite(t *testing.T) {
	withFlags(t, config.BackendSQLite, "")
	flagDBPath = filepath.Join(t.TempDir(), "turnip.db")

	env, err := loadEnv(logToStderr)
	require.NoError(t, err)
	require.NotNil(t, env.sqlite)

	ctx := context.Background()
	ctrl, _, err := env.newController(ctx, "p", nil)
	require.NoError(t, err)
	_, err = ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	_, err = ctrl.Place(0, "grandfather")
	require.NoError(t, err)
	_, _, err = ctrl.Pull(ctx)
	require.NoError(t, err)

	attempts, err := env.sqlite.RecentAttempts(ctx, "p", 0, 10)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	profiles, err := listProfiles(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, profiles)

	require.NoError(t, resetProgress(ctx, env, "p"))
	attempts, err = env.sqlite.RecentAttempts(ctx, "p", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, attempts)

	profiles, err = listProfiles(ctx, env)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	require.NoError(t, env.Close())
}

func TestListProfilesNeedsSQLite(t *testing.T) {
	_, err := listProfiles(context.Background(), &appEnv{})
	assert.ErrorContains(t, err, "sqlite")
}

func TestProfileDefault(t *testing.T) {
	env := &appEnv{}
	assert.Equal(t, "local", env.profile())
	env.cfg.Game.Profile = "bob"
	assert.Equal(t, "bob", env.profile())
}
