package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "employees.sqlite", cfg.Database.Path)
	assert.Equal(t, time.Second, cfg.Database.SlowThreshold)
	assert.Equal(t, IdentityNameOrCode, cfg.Identity.Match)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "employee-tool.yaml")
	content := []byte("db:\n  path: /tmp/hr.sqlite\n  slow_threshold: 250ms\nidentity:\n  match: name_or_code\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("EMPLOYEE_TOOL_IDENTITY_MATCH", "CODE")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hr.sqlite", cfg.Database.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.SlowThreshold)
	assert.Equal(t, IdentityCode, cfg.Identity.Match)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EMPLOYEE_TOOL_DB_PATH=from-dotenv.sqlite\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("EMPLOYEE_TOOL_DB_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.sqlite", cfg.Database.Path)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.sqlite"},
		Identity: IdentityConfig{Match: IdentityNameOrCode},
	}
	require.NoError(t, valid.Validate())

	noDSN := valid
	noDSN.Database = DatabaseConfig{Driver: DriverPostgres}
	assert.Error(t, noDSN.Validate())

	badDriver := valid
	badDriver.Database.Driver = "oracle"
	assert.Error(t, badDriver.Validate())

	badIdentity := valid
	badIdentity.Identity.Match = "name"
	assert.Error(t, badIdentity.Validate())
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}
