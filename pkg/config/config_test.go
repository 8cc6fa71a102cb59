package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "Data/Files", cfg.Fetch.BaseDirectory)
	assert.Equal(t, int64(300*1024*1024), cfg.Fetch.MaxBytes())
	assert.Equal(t, []string{".csv"}, cfg.Fetch.AllowedExtensions)
	assert.Equal(t, []string{"text/csv", "application/csv"}, cfg.Fetch.AllowedContentTypes)
	assert.Equal(t, 5*time.Minute, cfg.Fetch.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRedirects)
	assert.Equal(t, "FileDownloader/1.0", cfg.Fetch.UserAgent)
	assert.False(t, cfg.Schedule.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("FETCH_TIMEOUT", "90")
	v.Set("IMPORT_LOCK_WAIT", "2s")
	v.Set("FETCH_ALLOWED_EXTENSIONS", ".CSV, .txt ,")
	v.Set("HTTP_PORT", "9090")
	v.Set("SCHEDULE_CRON", "@every 1h")
	v.Set("SCHEDULE_PRODUCTS_URL", "https://h/p.csv")
	v.Set("SCHEDULE_INVENTORY_URL", "https://h/i.csv")
	v.Set("SCHEDULE_PRICES_URL", "https://h/pr.csv")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, 90*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Import.LockWait)
	assert.Equal(t, []string{".csv", ".txt"}, cfg.Fetch.AllowedExtensions)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Schedule.Enabled())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "warehouse", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/warehouse?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
