package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: talentflow
  maintenance:
    endpoints:
      - POST /api/v1/registration/sessions
server:
  cors: "http://localhost:5173, https://talentflow.pt"
modules:
  registration:
    enabled: true
    session_ttl_minutes: 30
verification:
  ttl_seconds: 600
jwt:
  secret: c2VjcmV0
`

func TestNewViperFromBytes(t *testing.T) {
	t.Parallel()

	_, err := NewViperFromBytes("", nil)
	require.Error(t, err)

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)
	defer cfg.Close()

	assert.Equal(t, "talentflow", cfg.GetString("app.name"))
	assert.True(t, cfg.GetBool("modules.registration.enabled"))
	assert.Equal(t, 30*time.Minute, cfg.GetMinute("modules.registration.session_ttl_minutes"))
	assert.Equal(t, 10*time.Minute, cfg.GetSecond("verification.ttl_seconds"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("jwt.secret"))
	assert.Equal(t, []string{"POST /api/v1/registration/sessions"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.Equal(t, []string{"http://localhost:5173", "https://talentflow.pt"}, cfg.GetArray("server.cors"))
	assert.Empty(t, cfg.GetArray("missing.key"))
}

func TestViper_EnvOverride(t *testing.T) {
	t.Setenv("APP_NAME", "talentflow-staging")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "talentflow-staging", cfg.GetString("app.name"))
}

func TestNewViper_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, "talentflow", cfg.GetString("app.name"))

	called := make(chan struct{}, 1)
	cfg.OnChange(func() { called <- struct{}{} })
	cfg.notify()
	assert.Len(t, called, 1)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TALENTFLOW_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TALENTFLOW_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), file))
	assert.Equal(t, "loaded", os.Getenv("TALENTFLOW_TEST_DOTENV"))
}
