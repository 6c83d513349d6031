package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "acb.ini", `
currency = USD
cache =
wash-days = 0

[rates]
acquire = daily close
dispose = 90-day noon

[split GOOG]
date = 2014-04-02
to = GOOGL
par = 0.001 USD
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "", cfg.Cache)
	assert.Equal(t, 0, cfg.WashDays)
	assert.Equal(t, acb.RatePolicy{Acquire: acb.DailyClose, Dispose: acb.NinetyDayNoon, Other: acb.DailyNoon}, cfg.Policy)
	require.Len(t, cfg.Splits, 1)
	split := cfg.Splits[0]
	assert.Equal(t, "GOOG", split.From)
	assert.Equal(t, "GOOGL", split.To)
	assert.Equal(t, date.New(2014, time.April, 2), split.SettlementDate)
	assert.True(t, split.ParValue.Equal(acb.GoogleSplit2014().ParValue))
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.ini"))
	require.NoError(t, err)
	assert.Equal(t, "CAD", cfg.Currency)
	assert.Equal(t, acb.DefaultWashDays, cfg.WashDays)
	assert.Equal(t, acb.UniformRate(acb.DailyNoon), cfg.Policy)
	assert.Empty(t, cfg.Splits)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"currency":  "currency = ABC\n",
		"wash days": "wash-days = -1\n",
		"rate kind": "[rates]\nother = weekly\n",
		"split":     "[split GOOG]\ndate = 2014-04-02\n",
		"par":       "[split GOOG]\ndate = 2014-04-02\nto = GOOGL\npar = 0.001\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "acb.ini", content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache/acb"), expandHome("~/.cache/acb"))
	assert.Equal(t, "/tmp/acb", expandHome("/tmp/acb"))
}
