package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// not parallel: the tests modify the process environment
func TestLoadConfig_EnvFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"MNEMONIC=\"word word word\"\nERTH_URL=https://file.example\nGAS_PRICE=0.25\n"), 0o600))

	t.Setenv("ERTH_URL", "https://env.example")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "word word word", cfg.Mnemonic)
	assert.Equal(t, "https://env.example", cfg.URL)
	assert.Equal(t, DefaultChainID, cfg.ChainID)
	assert.True(t, decimal.RequireFromString("0.25").Equal(cfg.GasPrice))
	assert.Equal(t, "uscrt", cfg.FeeDenom)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.URL)

	_, err = LoadConfig(missing, true)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfig_InvalidGasPrice(t *testing.T) {
	t.Setenv("GAS_PRICE", "cheap")

	_, err := LoadConfig("", false)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestConfig_Redacted(t *testing.T) {
	t.Parallel()

	cfg := testConfig().Redacted()
	assert.Equal(t, "<redacted>", cfg.Mnemonic)
	assert.Empty(t, DefaultConfig().Redacted().Mnemonic)
}
