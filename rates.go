package acb

import (
	"context"
	"fmt"

	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
)

// RateTable holds the exchange rates published for a currency pair on a day:
// the value of one unit of From in To, per rate kind.
type RateTable struct {
	Date  date.Date // the date the rates actually apply to
	Rates map[RateKind]decimal.Decimal

	// Provisional marks a table built from data that may still be published
	// or revised, like today's rate or the current month's average. It is
	// never cached.
	Provisional bool
}

// RateProvider fetches historical exchange rates.
//
// A provider returns ErrUnsupportedCurrencyPair for a pair it does not
// publish (including the reverse of a pair it does publish), and
// ErrRateUnavailable when no data exists for the date. Days without a
// published rate, like bank holidays, are reported as a table of negative
// values (see RateTable.IsHoliday). Tables that could still change are
// flagged Provisional.
//
//go:generate mockgen -destination=mocks/mock_rate_provider.go -package=mocks github.com/etnz/acb RateProvider
type RateProvider interface {
	FetchRateTable(ctx context.Context, from, to string, on date.Date) (RateTable, error)
}

// RateKey identifies a rate table.
type RateKey struct {
	From string
	To   string
	On   date.Date
}

func (k RateKey) String() string { return fmt.Sprintf("%s%s@%s", k.From, k.To, k.On) }

// inverse returns the key of the reverse pair on the same day.
func (k RateKey) inverse() RateKey { return RateKey{From: k.To, To: k.From, On: k.On} }

// Rate returns the rate of the given kind.
func (t RateTable) Rate(kind RateKind) (decimal.Decimal, error) {
	r, ok := t.Rates[kind]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q not published for %s", ErrUnknownRateKind, kind, t.Date)
	}
	return r, nil
}

// IsHoliday reports whether the table flags a day without published rates.
func (t RateTable) IsHoliday() bool {
	for _, r := range t.Rates {
		if r.IsNegative() {
			return true
		}
	}
	return len(t.Rates) == 0
}

// HolidayTable returns the table a provider reports for a day without rates.
func HolidayTable(on date.Date, kinds ...RateKind) RateTable {
	t := RateTable{Date: on, Rates: make(map[RateKind]decimal.Decimal, len(kinds))}
	for _, k := range kinds {
		t.Rates[k] = decimal.NewFromInt(-1)
	}
	return t
}

// identity returns the table of a no-op conversion.
func identity(on date.Date) RateTable {
	t := RateTable{Date: on, Rates: make(map[RateKind]decimal.Decimal)}
	for _, k := range RateKinds() {
		t.Rates[k] = decimal.NewFromInt(1)
	}
	return t
}

// invert returns the table of the reverse pair: every rate is replaced by its
// reciprocal, the date is kept.
func (t RateTable) invert() RateTable {
	inv := RateTable{Date: t.Date, Rates: make(map[RateKind]decimal.Decimal, len(t.Rates)), Provisional: t.Provisional}
	one := decimal.NewFromInt(1)
	for k, r := range t.Rates {
		if r.IsZero() {
			inv.Rates[k] = r
			continue
		}
		inv.Rates[k] = one.Div(r)
	}
	return inv
}

// standIn returns a table where every rate kind of t is replaced by its
// closing rate. It stands for the rates of a following bank holiday.
func (t RateTable) standIn() (RateTable, error) {
	closing, err := t.Rate(DailyClose)
	if err != nil {
		return RateTable{}, fmt.Errorf("%w: no closing rate on %s to stand in for a holiday", ErrRateUnavailable, t.Date)
	}
	s := RateTable{Date: t.Date, Rates: make(map[RateKind]decimal.Decimal, len(t.Rates)), Provisional: t.Provisional}
	for k := range t.Rates {
		s.Rates[k] = closing
	}
	return s, nil
}
