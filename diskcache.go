package acb

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/acb/date"
	"github.com/golang/glog"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DiskCache is a persistent RateCache: one JSON file per key in a directory.
//
// Historical rates never change, so entries never expire.
type DiskCache struct {
	dir string
}

// diskEntry is the persisted form of a rate table.
type diskEntry struct {
	Key   string            `json:"key"`
	Date  date.Date         `json:"date"`
	Rates map[string]string `json:"rates"`
}

// NewDiskCache returns a cache persisted in dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create rate cache %q: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

// file returns the path of the file holding key.
func (c *DiskCache) file(key RateKey) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", sha1.Sum([]byte(key.String()))))
}

// Get retrieves a table from disk. Unreadable entries are reported as a miss.
func (c *DiskCache) Get(key RateKey) (RateTable, bool) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return RateTable{}, false
	}
	var e diskEntry
	if err := json.Unmarshal(content, &e); err != nil || e.Key != key.String() {
		glog.Warningf("ignoring corrupted rate cache entry for %s: %v", key, err)
		return RateTable{}, false
	}
	t := RateTable{Date: e.Date, Rates: make(map[RateKind]decimal.Decimal, len(e.Rates))}
	for name, v := range e.Rates {
		kind, err := ParseRateKind(name)
		if err != nil {
			glog.Warningf("ignoring rate cache entry for %s: %v", key, err)
			return RateTable{}, false
		}
		if t.Rates[kind], err = decimal.NewFromString(v); err != nil {
			glog.Warningf("ignoring rate cache entry for %s: %v", key, err)
			return RateTable{}, false
		}
	}
	return t, true
}

// Put stores a table to disk. The file is written aside and renamed in place
// so that concurrent writers never expose a partial entry.
func (c *DiskCache) Put(key RateKey, table RateTable) error {
	e := diskEntry{Key: key.String(), Date: table.Date, Rates: make(map[string]string, len(table.Rates))}
	for k, v := range table.Rates {
		e.Rates[k.String()] = v.String()
	}
	content, err := json.Marshal(e)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(c.dir, "rate-*.tmp")
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), c.file(key))
}
