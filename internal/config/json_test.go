package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{"endpoint_addr_http": ":9001", "database_dsn": "postgres://json@localhost/json", "bcrypt_cost": 5}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	origArgs := os.Args
	os.Args = []string{"testbin", "-c", path}
	t.Cleanup(func() { os.Args = origArgs })

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":9001")
	assert.Equal(t, c.DatabaseDSN, "postgres://json@localhost/json")
	assert.Equal(t, c.BcryptCost, 5)
	// Untouched fields keep their defaults.
	assert.Equal(t, c.GinMode, "debug")
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"testbin"}
	t.Cleanup(func() { os.Args = origArgs })

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, c.EndpointAddrHTTP, ":8000")
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"testbin", "-c", "/nonexistent/conf.json"}
	t.Cleanup(func() { os.Args = origArgs })

	var c Config
	c.LoadDefaults()

	assert.Panics(t, func() { parseJson(&c) })
}
