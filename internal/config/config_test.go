package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petledger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "petledger-imports", cfg.S3.Bucket)
	assert.Equal(t, int64(10*1024*1024), cfg.S3.MaxFileBytes())
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 60*time.Second, cfg.Import.SubmitTimeout)
	assert.Equal(t, 10000, cfg.Import.MaxRows)
	assert.True(t, cfg.Import.ArchiveUploads)
	assert.Equal(t, time.Hour, cfg.Import.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
}

func TestLoad_CORSOriginsList(t *testing.T) {
	t.Setenv("PETLEDGER_SERVER_CORS_ORIGINS", " https://shop.example , ,https://admin.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PETLEDGER_DB_HOST", "db.internal")
	t.Setenv("PETLEDGER_LOG_FORMAT", "json")
	t.Setenv("PETLEDGER_IMPORT_SUBMIT_TIMEOUT", "5s")
	t.Setenv("PETLEDGER_IMPORT_ARCHIVE_UPLOADS", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.Import.SubmitTimeout)
	assert.False(t, cfg.Import.ArchiveUploads)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PETLEDGER_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_RejectsZeroSubmitTimeout(t *testing.T) {
	t.Setenv("PETLEDGER_IMPORT_SUBMIT_TIMEOUT", "0s")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5433, Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@h:5433/n?sslmode=require", d.DSN())
}
