package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/IamHazels/employee-tool/internal/config"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:        config.DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "employees.sqlite"),
		SlowThreshold: time.Second,
	}
}

func TestConnectAndMigrate(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	require.NoError(t, Migrate(database, cfg.Driver, zap.NewNop()))
	// Second run is a no-op.
	require.NoError(t, Migrate(database, cfg.Driver, zap.NewNop()))

	assert.True(t, database.Migrator().HasTable("employees"))
	assert.True(t, database.Migrator().HasTable("disciplinary_records"))

	sqlDB, err := database.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestForeignKeysEnforced(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })
	require.NoError(t, Migrate(database, cfg.Driver, zap.NewNop()))

	err = database.Exec(
		"INSERT INTO disciplinary_records (employee_id, reason, level, expiry_date, created_at) VALUES (?, ?, ?, ?, ?)",
		999, "late", "verbal", time.Now().UTC(), time.Now().UTC(),
	).Error
	assert.Error(t, err)
}

func TestMigrateUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)

	database, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	assert.Error(t, Migrate(database, "oracle", zap.NewNop()))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "hr.sqlite?_foreign_keys=on", sqliteDSN("hr.sqlite"))
	assert.Equal(t, "file:hr.sqlite?cache=shared&_foreign_keys=on", sqliteDSN("file:hr.sqlite?cache=shared"))
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
