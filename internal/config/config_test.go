package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INR", cfg.Currency.Code)
	assert.Equal(t, "PO", cfg.Prefix(domain.KindPurchaseOrder))
	assert.Equal(t, "DN", cfg.Prefix(domain.KindDebitNote))
	assert.Equal(t, "PUR", cfg.Prefix(domain.KindPurchase))
}

func TestLoad_OverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("documents:\n  debit_note_prefix: DEB\ncurrency:\n  symbol: Rs.\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEB", cfg.Prefix(domain.KindDebitNote))
	assert.Equal(t, "PO", cfg.Prefix(domain.KindPurchaseOrder))
	assert.Equal(t, "Rs.", cfg.Currency.Symbol)
	assert.Equal(t, "INR", cfg.Currency.Code)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/kanakku-test.yaml")
	assert.Equal(t, "/tmp/kanakku-test.yaml", DefaultConfigPath())
}

func TestLoadEnv_ReadsDotenvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("KANAKKU_TEST_A=from-file\nKANAKKU_TEST_B=from-file\n"), 0600))
	t.Setenv("KANAKKU_TEST_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("KANAKKU_TEST_A") })

	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-file", os.Getenv("KANAKKU_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("KANAKKU_TEST_B"))
}
