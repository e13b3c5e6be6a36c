package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs the one-time Load up front so it cannot overwrite values a
// test has just loaded from its own files.
func TestMain(m *testing.M) {
	_ = Load()
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")))

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, "inventory.db", DatabaseDSN())
	assert.Equal(t, "inventory_export.csv", ExportPath())
	assert.Equal(t, "local", ExportDisk())
	assert.Equal(t, 10*time.Second, LookupTimeout())
	assert.True(t, LookupEnabled())
	assert.Equal(t, "memory", LockDriver())
}

func TestLoadFromFiles_DotEnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"export_path": "from-json.csv", "lookup_enabled": false, "db_driver": "postgres"}`)
	envPath := writeFile(t, dir, ".env", "# comment\nEXPORT_PATH=\"from-env.csv\"\nLOOKUP_TIMEOUT=250ms\nbogus line\n")

	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "from-env.csv", ExportPath())
	assert.False(t, LookupEnabled())
	assert.Equal(t, 250*time.Millisecond, LookupTimeout())
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Contains(t, DatabaseDSN(), "dbname=inventory")
}

func TestLoadFromFiles_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DATABASE_DSN=file.db\n")
	t.Setenv("DATABASE_DSN", "env.db")

	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), envPath))

	assert.Equal(t, "env.db", DatabaseDSN())
}

func TestLoadFromFiles_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	err := loadFromFiles(jsonPath, filepath.Join(dir, "none.env"))
	assert.Error(t, err)
}

func TestFallbacks(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DB_DRIVER=oracle\nLOOKUP_TIMEOUT=soon\nLOCK_DRIVER=etcd\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), envPath))

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, 10*time.Second, LookupTimeout())
	assert.Equal(t, "memory", LockDriver())
}

func TestCORSOriginsAndRateLimit(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "CORS_ORIGINS= https://a.example , ,https://b.example\nLOOKUP_RATE_LIMIT=5\n")
	require.NoError(t, loadFromFiles(filepath.Join(dir, "none.json"), envPath))

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())
	assert.Equal(t, 5, LookupRateLimit())
}
