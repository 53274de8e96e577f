package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_ORIGINS", "http://localhost:5173, https://app.example.com ,,")
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, envList("TEST_ORIGINS", nil))

	t.Setenv("TEST_ORIGINS", "")
	assert.Equal(t, []string{"*"}, envList("TEST_ORIGINS", []string{"*"}))
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEST_FLAG", "false")
	assert.False(t, envBool("TEST_FLAG", true))

	t.Setenv("TEST_FLAG", "maybe")
	assert.True(t, envBool("TEST_FLAG", true))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TEST_EXPIRY", "2h")
	assert.Equal(t, 2*time.Hour, envDuration("TEST_EXPIRY", time.Minute))

	t.Setenv("TEST_EXPIRY", "soon")
	assert.Equal(t, time.Minute, envDuration("TEST_EXPIRY", time.Minute))
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.StorageEnabled())
}

func TestSanitized(t *testing.T) {
	cfg := &Config{AppName: "Nocturne", JWTSecret: "secret", ResendAPIKey: "key", S3SecretKey: "s3"}

	safe := cfg.Sanitized()

	assert.Equal(t, "Nocturne", safe.AppName)
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.S3SecretKey)
}
