package cmd

import (
	"github.com/etnz/acb"
	"github.com/etnz/acb/boc"
	"github.com/golang/glog"
)

// newConverter returns a converter fetching rates from the Bank of Canada,
// memoized in memory and in the configured persistent cache.
func newConverter(cfg Config) (*acb.Converter, error) {
	caches := []acb.RateCache{acb.NewMemoryCache()}
	if cfg.Cache != "" {
		disk, err := acb.NewDiskCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("using rate cache %s", cfg.Cache)
		caches = append(caches, disk)
	}
	return acb.NewConverter(&boc.Provider{}, acb.Layered(caches...)), nil
}
