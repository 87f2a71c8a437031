package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
database:
  host: localhost
  port: 5432
  user: comanda
  dbname: comanda
  sslmode: disable
jwt:
  secret: test-secret
  expires_in: 24
assets:
  dir: /tmp/assets
  base_url: http://localhost:9090
events:
  brokers:
    - kafka:9092
  topic: comanda.events
cors:
  allowed_origins:
    - "*"
`), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "comanda", cfg.Database.DBName)
	assert.Equal(t, 24, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "comanda.events", cfg.Events.Topic)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
