package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/synctv-org/authd/cmd/flags"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/internal/db"
)

func withFlags(t *testing.T, dataDir string) {
	t.Helper()
	old := []any{flags.DataDir, flags.SkipConfig, flags.SkipEnv, flags.EnvNoPrefix, flags.Dev}
	flags.DataDir, flags.SkipConfig, flags.SkipEnv, flags.EnvNoPrefix, flags.Dev = dataDir, false, false, false, false
	t.Cleanup(func() {
		flags.DataDir = old[0].(string)
		flags.SkipConfig = old[1].(bool)
		flags.SkipEnv = old[2].(bool)
		flags.EnvNoPrefix = old[3].(bool)
		flags.Dev = old[4].(bool)
		conf.Conf = nil
	})
}

func TestInitConfigWritesDefaultsAndSecret(t *testing.T) {
	dir := t.TempDir()
	withFlags(t, dir)

	require.NoError(t, InitConfig(context.Background()))
	require.FileExists(t, filepath.Join(dir, "config.yaml"))
	require.NotEmpty(t, conf.Conf.Session.Secret)
	secret := conf.Conf.Session.Secret

	// The generated secret is persisted.
	require.NoError(t, InitConfig(context.Background()))
	require.Equal(t, secret, conf.Conf.Session.Secret)
	require.Equal(t, 7*24*time.Hour, conf.Conf.Session.TTL)
	require.Equal(t, db.DatabaseTypeSqlite3, conf.Conf.Database.Type)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	withFlags(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTHD_SERVER_PORT=9090\n"), 0o600))
	t.Setenv("AUTHD_SERVER_PORT", "")
	t.Setenv("AUTHD_REDIS_ENABLE", "true")
	t.Setenv("AUTHD_SESSION_TTL", "1h")

	require.NoError(t, InitConfig(context.Background()))
	require.EqualValues(t, 9090, conf.Conf.Server.HTTP.Port)
	require.True(t, conf.Conf.Redis.Enable)
	require.Equal(t, time.Hour, conf.Conf.Session.TTL)
}

func TestInitConfigRejectsSkippingBoth(t *testing.T) {
	withFlags(t, t.TempDir())
	flags.SkipConfig, flags.SkipEnv = true, true
	require.Error(t, InitConfig(context.Background()))
}
