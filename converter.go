package acb

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/acb/date"
	"github.com/golang/glog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxWalkBack is the default number of days a Converter looks back for
// a published rate when a day has none.
const DefaultMaxWalkBack = 14

// Converter converts amounts between currencies using historical rates.
//
// Rate tables are memoized per (from, to, date) in its cache, and concurrent
// lookups of the same key share a single fetch, so the provider is called at
// most once per key for the lifetime of the cache.
type Converter struct {
	provider RateProvider
	cache    RateCache
	group    singleflight.Group

	// MaxWalkBack bounds the bank-holiday fallback.
	MaxWalkBack int
}

// NewConverter returns a Converter fetching rates from provider. A nil cache
// means an in-memory cache private to this Converter.
func NewConverter(provider RateProvider, cache RateCache) *Converter {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Converter{provider: provider, cache: cache, MaxWalkBack: DefaultMaxWalkBack}
}

// Convert converts amount into currency 'to' using the rate of the given kind on a date.
//
// Converting into the same currency, or converting a zero amount, never looks a rate up.
func (c *Converter) Convert(ctx context.Context, amount Money, to string, on date.Date, kind RateKind) (Money, error) {
	if amount.Currency() == to {
		return amount, nil
	}
	if amount.IsZero() {
		return M(0, to), nil
	}
	rate, _, err := c.Rate(ctx, amount.Currency(), to, on, kind)
	if err != nil {
		return Money{}, err
	}
	return amount.exchange(rate, to), nil
}

// Rate returns the value of one unit of 'from' in 'to' and the date the rate
// actually applies to.
func (c *Converter) Rate(ctx context.Context, from, to string, on date.Date, kind RateKind) (rate decimal.Decimal, effective date.Date, err error) {
	table, err := c.RateTable(ctx, from, to, on)
	if err != nil {
		return decimal.Zero, date.Date{}, err
	}
	r, err := table.Rate(kind)
	if err != nil {
		return decimal.Zero, date.Date{}, fmt.Errorf("%s to %s: %w", from, to, err)
	}
	return r, table.Date, nil
}

// RateTable returns the resolved table of rates from 'from' to 'to' on a date.
//
// When the date has no published rate, the table of the closest earlier day is
// used, with its closing rate standing in for every rate kind.
func (c *Converter) RateTable(ctx context.Context, from, to string, on date.Date) (RateTable, error) {
	if from == to {
		return identity(on), nil
	}
	key := RateKey{From: from, To: to, On: on}
	return c.resolve(ctx, key, func() (RateTable, error) { return c.compute(ctx, key) })
}

// resolve looks key up in the cache, or computes it and writes it through.
// Provisional tables are returned but never written.
func (c *Converter) resolve(ctx context.Context, key RateKey, compute func() (RateTable, error)) (RateTable, error) {
	if t, ok := c.cache.Get(key); ok {
		glog.V(2).Infof("rate cache hit %s", key)
		return t, nil
	}
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// a concurrent flight may have completed while waiting.
		if t, ok := c.cache.Get(key); ok {
			return t, nil
		}
		t, err := compute()
		if err != nil {
			return nil, err
		}
		if t.Provisional {
			glog.V(1).Infof("rates %s are provisional, not cached", key)
			return t, nil
		}
		if err := c.cache.Put(key, t); err != nil {
			glog.Warningf("rate cache write for %s (ignored): %v", key, err)
		}
		return t, nil
	})
	if err != nil {
		return RateTable{}, err
	}
	return v.(RateTable), nil
}

// compute resolves key, inverting the reverse pair if only that one is
// published. The reverse table is resolved under its own key.
func (c *Converter) compute(ctx context.Context, key RateKey) (RateTable, error) {
	t, err := c.fetch(ctx, key, 0)
	if !errors.Is(err, ErrUnsupportedCurrencyPair) {
		return t, err
	}
	inv := key.inverse()
	forward, err := c.resolve(ctx, inv, func() (RateTable, error) { return c.fetch(ctx, inv, 0) })
	if errors.Is(err, ErrUnsupportedCurrencyPair) {
		return RateTable{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedCurrencyPair, key.From, key.To)
	}
	if err != nil {
		return RateTable{}, err
	}
	return forward.invert(), nil
}

// fetch gets the table of a published pair from the provider, applying the
// bank-holiday fallback.
func (c *Converter) fetch(ctx context.Context, key RateKey, depth int) (RateTable, error) {
	glog.V(1).Infof("fetching rates %s", key)
	t, err := c.provider.FetchRateTable(ctx, key.From, key.To, key.On)
	if errors.Is(err, ErrUnsupportedCurrencyPair) {
		return RateTable{}, err
	}
	if err != nil {
		return RateTable{}, fmt.Errorf("cannot get %s rates: %w", key, err)
	}
	if !t.IsHoliday() {
		return t, nil
	}

	if depth >= c.MaxWalkBack {
		return RateTable{}, fmt.Errorf("%w: no %s%s rate published in the %d days before %s", ErrRateUnavailable, key.From, key.To, depth, key.On)
	}
	glog.V(1).Infof("%s was a bank holiday, checking the day before", key.On)
	prev := RateKey{From: key.From, To: key.To, On: key.On.Add(-1)}
	previous, err := c.resolve(ctx, prev, func() (RateTable, error) { return c.fetch(ctx, prev, depth+1) })
	if err != nil {
		return RateTable{}, err
	}
	s, err := previous.standIn()
	if err != nil {
		return RateTable{}, err
	}
	// a day with no rate yet may still get one.
	s.Provisional = s.Provisional || t.Provisional
	return s, nil
}
