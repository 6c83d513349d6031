package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/acb"
	"github.com/etnz/acb/cibc"
	"github.com/etnz/acb/mssb"
)

// parsers maps a file name prefix to the adapter reading it.
var parsers = map[string]func(io.Reader) ([]acb.Transaction, error){
	"cibc": cibc.Parse,
	"mssb": mssb.Parse,
}

// parserFor returns the adapter of a file, picked from its name.
func parserFor(file string) (func(io.Reader) ([]acb.Transaction, error), error) {
	base := strings.ToLower(filepath.Base(file))
	for prefix, parse := range parsers {
		if strings.HasPrefix(base, prefix) {
			return parse, nil
		}
	}
	return nil, fmt.Errorf("unknown format for %q, file names must start with one of cibc, mssb", file)
}

// loadEvents reads the transactions of all the files, followed by the
// configured corporate actions.
func loadEvents(cfg Config, files ...string) ([]acb.Event, error) {
	var events []acb.Event
	for _, file := range files {
		parse, err := parserFor(file)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		txs, err := parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		for _, tx := range txs {
			events = append(events, tx)
		}
	}
	for _, split := range cfg.Splits {
		events = append(events, split)
	}
	return events, nil
}
