// Package boc provides historical exchange rates published by the Bank of
// Canada through its Valet API.
//
// Since 2017 the Bank publishes a single daily indicative rate and monthly
// averages for a set of currencies against the Canadian dollar. Before that,
// the legacy USD noon, closing, high and low rates are used. The Provider maps
// them to the rate kinds of an acb.RateTable.
package boc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Valet API endpoint.
const DefaultBaseURL = "https://www.bankofcanada.ca/valet"

// Start is the first day the Valet FX series are published for.
var Start = date.New(2017, time.January, 3)

// LegacyStart is the first day of the legacy rates, published until Start.
var LegacyStart = date.New(2007, time.May, 1)

// Currencies published against CAD.
var Currencies = []string{"USD", "EUR", "GBP", "JPY", "CHF", "AUD"}

// legacy are the series of the rates published before Start, USD only.
var legacy = struct {
	daily   map[acb.RateKind]string
	monthly map[acb.RateKind]string
}{
	daily: map[acb.RateKind]string{
		acb.DailyNoon:  "IEXE0101",
		acb.DailyClose: "IEXE0102",
		acb.DailyHigh:  "IEXE0103",
		acb.DailyLow:   "IEXE0104",
	},
	monthly: map[acb.RateKind]string{
		acb.MonthlyNoon:    "IEXM0101",
		acb.MonthlyClose:   "IEXM0102",
		acb.MonthlyHigh:    "IEXM0103",
		acb.MonthlyLow:     "IEXM0104",
		acb.NinetyDayNoon:  "IEXM0105",
		acb.NinetyDayClose: "IEXM0106",
	},
}

// Provider fetches rate tables from the Bank of Canada. It only publishes
// rates into CAD: the reverse pairs are reported as unsupported so that the
// caller inverts them.
//
// Monthly observations are memoized for the lifetime of the Provider. The
// zero value is ready to use.
type Provider struct {
	Client  *http.Client // nil means http.DefaultClient
	BaseURL string       // empty means DefaultBaseURL

	// Today returns the current date, nil means date.Today.
	Today func() date.Date

	mu        sync.Mutex
	monthlies map[string]decimal.Decimal // by series@first-of-month
}

var _ acb.RateProvider = (*Provider)(nil)

func (p *Provider) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}

func (p *Provider) baseURL() string {
	if p.BaseURL == "" {
		return DefaultBaseURL
	}
	return p.BaseURL
}

func (p *Provider) today() date.Date {
	if p.Today == nil {
		return date.Today()
	}
	return p.Today()
}

// Supported reports whether the pair is published.
func Supported(from, to string) bool {
	if to != "CAD" {
		return false
	}
	for _, c := range Currencies {
		if c == from {
			return true
		}
	}
	return false
}

// FetchRateTable returns the rates of one unit of 'from' in CAD on a day.
//
// Days without an observation, like weekends and bank holidays, are reported
// with a holiday table. Until the monthly average of its month is published,
// a table is provisional and has no monthly rates.
func (p *Provider) FetchRateTable(ctx context.Context, from, to string, on date.Date) (acb.RateTable, error) {
	if !Supported(from, to) {
		return acb.RateTable{}, fmt.Errorf("%w: %s to %s", acb.ErrUnsupportedCurrencyPair, from, to)
	}
	if on.After(p.today()) {
		return acb.RateTable{}, fmt.Errorf("%w: no %s%s data on %s yet", acb.ErrRateUnavailable, from, to, on)
	}
	if on.Before(Start) {
		return p.fetchLegacy(ctx, from, on)
	}

	daily, ok, err := p.observation(ctx, "FX"+from+to, on)
	if err != nil {
		return acb.RateTable{}, err
	}
	monthly, err := p.monthly(ctx, "FXM"+from+to, on.FirstOfMonth())
	provisional := errors.Is(err, errNotPublished)
	if err != nil && !provisional {
		return acb.RateTable{}, err
	}
	if !ok {
		t := acb.HolidayTable(on, acb.DailyKinds...)
		t.Provisional = provisional
		return t, nil
	}

	t := acb.RateTable{Date: on, Rates: make(map[acb.RateKind]decimal.Decimal), Provisional: provisional}
	for _, k := range acb.DailyKinds {
		t.Rates[k] = daily
	}
	if !provisional {
		for _, k := range acb.MonthlyKinds {
			t.Rates[k] = monthly
		}
	}
	if rate, ok := annual(from, on.Year()); ok {
		t.Rates[acb.Annual] = rate
	}
	return t, nil
}

// fetchLegacy returns the table of a day before Start. Legacy rates are final.
func (p *Provider) fetchLegacy(ctx context.Context, from string, on date.Date) (acb.RateTable, error) {
	if from != "USD" || on.Before(LegacyStart) {
		return acb.RateTable{}, fmt.Errorf("%w: no %sCAD data on %s", acb.ErrRateUnavailable, from, on)
	}
	noon, ok, err := p.observation(ctx, legacy.daily[acb.DailyNoon], on)
	if err != nil {
		return acb.RateTable{}, err
	}
	if !ok {
		return acb.HolidayTable(on, acb.DailyKinds...), nil
	}

	t := acb.RateTable{Date: on, Rates: make(map[acb.RateKind]decimal.Decimal)}
	for _, k := range acb.DailyKinds {
		if k == acb.DailyNoon {
			t.Rates[k] = noon
			continue
		}
		// the noon rate stands in for the series that are not served.
		rate, ok, err := p.observation(ctx, legacy.daily[k], on)
		switch {
		case errors.Is(err, acb.ErrRateUnavailable) || (err == nil && !ok):
			t.Rates[k] = noon
		case err != nil:
			return acb.RateTable{}, err
		default:
			t.Rates[k] = rate
		}
	}
	for _, k := range acb.MonthlyKinds {
		rate, err := p.monthly(ctx, legacy.monthly[k], on.FirstOfMonth())
		switch {
		case errors.Is(err, errNotPublished) || errors.Is(err, acb.ErrRateUnavailable):
			// reported as an unknown rate kind.
		case err != nil:
			return acb.RateTable{}, err
		default:
			t.Rates[k] = rate
		}
	}
	if rate, ok := annual(from, on.Year()); ok {
		t.Rates[acb.Annual] = rate
	}
	return t, nil
}

var errNotPublished = errors.New("not published")

// monthly returns the monthly observation of a series. on must be the first
// of a month.
func (p *Provider) monthly(ctx context.Context, series string, on date.Date) (decimal.Decimal, error) {
	if !on.IsFirstOfMonth() {
		return decimal.Zero, fmt.Errorf("%w: %s is not the first of a month", acb.ErrInvalidDate, on)
	}
	key := series + "@" + on.String()
	p.mu.Lock()
	rate, ok := p.monthlies[key]
	p.mu.Unlock()
	if ok {
		return rate, nil
	}

	rate, ok, err := p.observation(ctx, series, on)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		// the current month is published at the beginning of the next one.
		return decimal.Zero, fmt.Errorf("%w: %s for %s", errNotPublished, series, on.Format("2006-01"))
	}
	p.mu.Lock()
	if p.monthlies == nil {
		p.monthlies = make(map[string]decimal.Decimal)
	}
	p.monthlies[key] = rate
	p.mu.Unlock()
	return rate, nil
}
// observation returns the value of a series on a day, and false if the
// series has no observation that day.
func (p *Provider) observation(ctx context.Context, series string, on date.Date) (decimal.Decimal, bool, error) {
	// https://www.bankofcanada.ca/valet/observations/FXUSDCAD/json?start_date=2024-01-02&end_date=2024-01-02
	// {
	//   "seriesDetail": {...},
	//   "observations": [
	//     {"d": "2024-01-02", "FXUSDCAD": {"v": "1.3316"}}
	//   ]
	// }
	q := url.Values{}
	q.Set("start_date", on.String())
	q.Set("end_date", on.String())
	addr := fmt.Sprintf("%s/observations/%s/json?%s", p.baseURL(), url.PathEscape(series), q.Encode())

	jobj, err := jget(ctx, p.client(), addr)
	if err != nil {
		return decimal.Zero, false, err
	}
	obs, err := jsonpath.Get("$.observations", jobj)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: no observations for %s in response", acb.ErrRateUnavailable, series)
	}
	if list, ok := obs.([]any); !ok || len(list) == 0 {
		return decimal.Zero, false, nil
	}

	path := fmt.Sprintf("$.observations[0].%s.v", series)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("error parsing %s on %s: %q %w", series, on, path, err)
	}
	// jsonpath may return a list of one answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	var rate decimal.Decimal
	switch v := jval.(type) {
	case string:
		rate, err = decimal.NewFromString(v)
	case float64:
		rate = decimal.NewFromFloat(v)
	default:
		err = fmt.Errorf("not a number %v", jval)
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("error parsing %s on %s: %w", series, on, err)
	}
	return rate, true, nil
}
