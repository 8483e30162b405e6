package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	p := writeFile(t, `
app:
  env: dev
telegram:
  token: "file-token"
  admin_chat_id: 42
postgres:
  dsn: "postgres://localhost/elegance"
business:
  whatsapp_phone: "910000000000"
`)

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "file-token", c.Telegram.Token)
	assert.Equal(t, int64(42), c.Telegram.AdminChatID)
	assert.Equal(t, "postgres://localhost/elegance", c.Postgres.DSN)
	assert.Equal(t, "910000000000", c.Business.WhatsAppPhone)

	// дефолты
	assert.Equal(t, "Asia/Kolkata", c.App.Timezone)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, "migrations", c.Postgres.Migrations)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, "Elegance Events", c.Business.Name)
	assert.Equal(t, "hello@eleganceevents.com", c.Business.Email)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeFile(t, "telegram:\n  token: file-token\n")
	t.Setenv("APP_TELEGRAM_TOKEN", "env-token")
	t.Setenv("APP_HTTP_ADDR", ":9090")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "env-token", c.Telegram.Token)
	assert.Equal(t, ":9090", c.HTTP.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExampleConfig(t *testing.T) {
	c, err := Load("../../config/example.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "917016686728", c.Business.WhatsAppPhone)
}
