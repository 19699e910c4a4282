package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.Bank.OpTimeout)
	assert.Equal(t, 10, cfg.Bank.SummaryLimit)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:bank.db")
	t.Setenv("BANK_OP_TIMEOUT", "750ms")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:bank.db", cfg.DB.Url)
	assert.Equal(t, 750*time.Millisecond, cfg.Bank.OpTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv does not override variables that are already set, so register a
	// cleanup for the key it will export.
	t.Setenv("SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("SERVER_PORT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVER_PORT=4321\n"), 0o600))

	cfg, err := Load(".env.test")
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "oracle"}},
		{"postgres without url", map[string]string{"DATABASE_DRIVER": "postgres"}},
		{"zero timeout", map[string]string{"BANK_OP_TIMEOUT": "0s"}},
		{"negative summary limit", map[string]string{"BANK_SUMMARY_LIMIT": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****able", maskValue("postgres://u:p@h/db?sslmode=disable"))
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.bank"), nil, 0o600))
	chdir(t, nested)

	path, ok := findUp(".env.bank")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, ".env.bank"), path)

	_, ok = findUp("definitely-missing.env")
	assert.False(t, ok)
}
