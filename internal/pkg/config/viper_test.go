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
  server:
    cors: "http://a.test, http://b.test,"
    read_timeout_seconds: 15
modules:
  registration:
    enabled: true
    cpf_separators: ".-"
    endpoints:
      - /a
      - /b
instrument:
  trace_sample_ratio: 0.25
database:
  pool:
    max_conns: 12
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.True(t, cfg.GetBool("modules.registration.enabled"))
	assert.Equal(t, ".-", cfg.GetString("modules.registration.cpf_separators"))
	assert.Equal(t, int32(12), cfg.GetInt32("database.pool.max_conns"))
	assert.InDelta(t, 0.25, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
	assert.Equal(t, 15*time.Second, cfg.GetSecond("app.server.read_timeout_seconds"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"/a", "/b"}, cfg.GetArray("modules.registration.endpoints"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.Error(t, err)
}

func TestNewViper_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, ".-", cfg.GetString("modules.registration.cpf_separators"))
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
