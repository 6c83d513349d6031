package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/go-ini/ini"
)

// acb.ini file example:

/*
# reporting currency
currency = CAD

# persistent rate cache, empty disables it
cache = ~/.cache/acb

# superficial-loss window in days
wash-days = 30

[rates]
acquire = daily noon
dispose = daily noon
other = daily noon

# a stock split issuing GOOGL out of GOOG
[split GOOG]
date = 2014-04-02
to = GOOGL
par = 0.001 USD
*/

// Config is the configuration of a run.
type Config struct {
	Currency string
	Cache    string // directory of the persistent rate cache, empty means none
	WashDays int
	Policy   acb.RatePolicy
	Splits   []acb.StockSplit
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	cache := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cache = filepath.Join(dir, "acb")
	}
	return Config{
		Currency: "CAD",
		Cache:    cache,
		WashDays: acb.DefaultWashDays,
		Policy:   acb.UniformRate(acb.DailyNoon),
	}
}

// LoadConfig reads a configuration file. A missing file is not an error: the
// defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := ini.LooseLoad(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot load configuration %q: %w", path, err)
	}

	root := file.Section("")
	cfg.Currency = root.Key("currency").MustString(cfg.Currency)
	if err := acb.ValidateCurrency(cfg.Currency); err != nil {
		return cfg, fmt.Errorf("%s: invalid currency: %w", path, err)
	}
	if root.HasKey("cache") {
		cfg.Cache = expandHome(root.Key("cache").String())
	}
	cfg.WashDays = root.Key("wash-days").MustInt(cfg.WashDays)
	if cfg.WashDays < 0 {
		return cfg, fmt.Errorf("%s: wash-days must not be negative, got %d", path, cfg.WashDays)
	}

	rates := file.Section("rates")
	for name, kind := range map[string]*acb.RateKind{
		"acquire": &cfg.Policy.Acquire,
		"dispose": &cfg.Policy.Dispose,
		"other":   &cfg.Policy.Other,
	} {
		if !rates.HasKey(name) {
			continue
		}
		if *kind, err = acb.ParseRateKind(rates.Key(name).String()); err != nil {
			return cfg, fmt.Errorf("%s: [rates] %s: %w", path, name, err)
		}
	}

	for _, section := range file.Sections() {
		from, ok := strings.CutPrefix(section.Name(), "split ")
		if !ok {
			continue
		}
		split, err := parseSplit(strings.TrimSpace(from), section)
		if err != nil {
			return cfg, fmt.Errorf("%s: [%s]: %w", path, section.Name(), err)
		}
		cfg.Splits = append(cfg.Splits, split)
	}
	return cfg, nil
}

func parseSplit(from string, section *ini.Section) (acb.StockSplit, error) {
	on, err := date.Parse(section.Key("date").String())
	if err != nil {
		return acb.StockSplit{}, err
	}
	to := section.Key("to").String()
	if to == "" {
		return acb.StockSplit{}, fmt.Errorf("missing 'to' symbol")
	}
	par, err := acb.ParseMoney(section.Key("par").MustString("0 USD"))
	if err != nil {
		return acb.StockSplit{}, err
	}
	return acb.StockSplit{Date: on, SettlementDate: on, From: from, To: to, ParValue: par}, nil
}

// expandHome replaces a leading ~ by the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
