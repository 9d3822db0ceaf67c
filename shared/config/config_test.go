package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestMustLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "public.yaml", `
api:
  base_url: https://forum-api.dicoding.dev/v1
  request_timeout: 10s
  rate_limit: 5
  rate_burst: 2
log:
  level: debug
  format: json
bridge:
  addr: ":8090"
  cors_origins: ["http://localhost:5173"]
`)
	writeConfig(t, dir, "private.yaml", "access_token: 'tok'\n")

	cfg := MustLoad(dir)

	assert.Equal(t, "https://forum-api.dicoding.dev/v1", cfg.Public.Api.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Public.Api.RequestTimeout)
	assert.Equal(t, 5.0, cfg.Public.Api.RateLimit)
	assert.Equal(t, "json", cfg.Public.Log.Format)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Public.Bridge.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.Public.Bridge.ReadTimeout)
	assert.Equal(t, "tok", cfg.AccessToken())
}

func TestMustLoad_PrivateOptional(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "public.yaml", "api:\n  base_url: http://localhost:3000\n  request_timeout: 1s\nbridge:\n  addr: ':0'\n")

	cfg := MustLoad(dir)

	assert.Empty(t, cfg.AccessToken())
	assert.Equal(t, "info", cfg.Public.Log.Level)
	assert.Equal(t, "auto", cfg.Public.Log.Format)
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// Create temp config with a missing required field to ensure validation panics
	dir := t.TempDir()
	writeConfig(t, dir, "public.yaml", "api:\n  request_timeout: 1s\n# base_url is intentionally missing\nbridge:\n  addr: ':0'\n")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic due to missing required field, got none")
		}
	}()

	_ = MustLoad(dir)
}

func TestMustLoad_MissingFolder(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope")) })
}
