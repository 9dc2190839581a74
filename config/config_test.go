package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, time.Duration(0), cfg.JWTTTL)
	assert.Equal(t, "tasks", cfg.ESTasksIndex)
	assert.False(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, int32(10), cfg.DBMaxConns, "invalid ints fall back to the default")
	assert.True(t, cfg.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "3000", Env: "production", StorageDriver: "postgres"}
	require.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.Env = "development"
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWTSecret)

	cfg.Port = " "
	require.ErrorIs(t, cfg.Validate(), ErrMissingPort)

	cfg = &Config{Port: "3000", JWTSecret: "x", StorageDriver: "mongo"}
	require.ErrorIs(t, cfg.Validate(), ErrUnknownStorage)
}

func TestSplitList(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
