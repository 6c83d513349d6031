package acb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Acquire, Buy, Sell, CapitalReturn, Dividend, Fee} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" buy ")
	require.NoError(t, err)
	assert.Equal(t, Buy, got)

	_, err = ParseKind("SPLIT")
	assert.ErrorIs(t, err, ErrUnknownTransactionKind)
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestParseRateKind(t *testing.T) {
	for _, k := range RateKinds() {
		got, err := ParseRateKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	tests := map[string]RateKind{
		"daily-noon":   DailyNoon,
		"Monthly_Low":  MonthlyLow,
		"90-day-close": NinetyDayClose,
		"ANNUAL":       Annual,
	}
	for in, want := range tests {
		got, err := ParseRateKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRateKind("weekly noon")
	assert.ErrorIs(t, err, ErrUnknownRateKind)
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Date:           day(time.March, 1),
		SettlementDate: day(time.March, 6),
		Symbol:         "GOOG",
		Kind:           Sell,
		Units:          Q(1),
		Value:          USD(100),
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.Symbol = ""
	invalid.Units = Q(-1)
	invalid.SettlementDate = day(time.February, 1)
	err := invalid.Validate()
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.ErrorContains(t, err, "symbol is missing")
	assert.ErrorContains(t, err, "units must not be negative")
}

func TestSortEvents(t *testing.T) {
	a := Transaction{SettlementDate: day(time.March, 2), Memo: "a"}
	b := Transaction{SettlementDate: day(time.March, 1), Memo: "b"}
	c := Transaction{SettlementDate: day(time.March, 2), Memo: "c"}
	s := GoogleSplit2014()
	events := []Event{a, b, c, s}
	SortEvents(events)

	assert.Equal(t, []Event{s, b, a, c}, events)
}

func TestKind_IsAcquisition(t *testing.T) {
	for k, want := range map[Kind]bool{Acquire: true, Buy: true, Sell: false, CapitalReturn: false, Dividend: false, Fee: false} {
		assert.Equal(t, want, k.IsAcquisition(), "%s.IsAcquisition()", k)
	}
}

func TestRatePolicy(t *testing.T) {
	p := RatePolicy{Acquire: DailyNoon, Dispose: DailyClose, Other: Annual}
	assert.Equal(t, DailyNoon, p.For(Acquire))
	assert.Equal(t, DailyNoon, p.For(Buy))
	assert.Equal(t, DailyClose, p.For(Sell))
	assert.Equal(t, Annual, p.For(Dividend))
	assert.Equal(t, UniformRate(MonthlyNoon), RatePolicy{MonthlyNoon, MonthlyNoon, MonthlyNoon})
}
