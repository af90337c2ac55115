package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APPPORT", "DBDRIVER", "DB_TIMEOUT_MS", "SESSION_TTL_HOURS", "ALLOW_ADMIN_SIGNUP", "CORS_ORIGINS", "MAX_REPORT_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, uint16(8080), cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.AllowAdminSignup)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, int64(10<<20), cfg.MaxReportBytes)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APPPORT", "19091")
	t.Setenv("DBDRIVER", "Postgres")
	t.Setenv("DB_TIMEOUT_MS", "250")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test ,")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	assert.Equal(t, uint16(19091), cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.DBTimeout)
	assert.True(t, cfg.AllowAdminSignup)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestDialector_UnsupportedDriver(t *testing.T) {
	_, err := Dialector(&Config{AppEnv: "production", DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestDialector_DriverSelection(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&Config{AppEnv: "production", DBDriver: driver, DBName: "x.db"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}

func TestConnectDatabase_TestEnv(t *testing.T) {
	cfg := &Config{AppName: "cfgtest", AppEnv: "test"}

	db, err := ConnectDatabase(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	_ = sqlDB.Close()
}

func TestLoadConfig_Singleton(t *testing.T) {
	original := LoadConfig()
	defer SetConfigForTest(original)

	custom := &Config{AppName: "custom", AppEnv: "test"}
	SetConfigForTest(custom)
	assert.Same(t, custom, LoadConfig())
}
