package acb

import (
	"maps"
	"slices"
)

// Result is the final state of a processed stream: cost bases, remaining lots
// and capital gains, all in the reporting currency.
type Result struct {
	Currency string

	acbs    map[string]AdjustedCostBase
	ledgers map[string]*ShareLedger
	gains   *Gains
}

// Holding is a non-zero position at the end of the stream.
type Holding struct {
	Symbol      string
	Units       Quantity
	Cost        Money
	CostPerUnit Money
}

// Symbols returns every symbol ever referenced, sorted.
func (r *Result) Symbols() []string {
	return slices.Sorted(maps.Keys(r.acbs))
}

// CostBase returns the final cost base of a symbol.
func (r *Result) CostBase(symbol string) AdjustedCostBase {
	if a, ok := r.acbs[symbol]; ok {
		return a
	}
	return AdjustedCostBase{Cost: M(0, r.Currency)}
}

// Ledger returns the remaining lots of a symbol, oldest first.
func (r *Result) Ledger(symbol string) []Lot {
	if l, ok := r.ledgers[symbol]; ok {
		return l.Lots()
	}
	return nil
}

// Holdings returns the positions with units left, sorted by symbol.
func (r *Result) Holdings() []Holding {
	var holdings []Holding
	for _, symbol := range r.Symbols() {
		a := r.acbs[symbol]
		perUnit, ok := a.CostPerUnit()
		if !ok {
			continue
		}
		holdings = append(holdings, Holding{
			Symbol:      symbol,
			Units:       a.Units,
			Cost:        a.Cost,
			CostPerUnit: perUnit,
		})
	}
	return holdings
}

// YearTotals returns the capital gains of every tax year with activity, sorted by year.
func (r *Result) YearTotals() []YearGain { return r.gains.Years() }

// Year returns the capital gains of a tax year.
func (r *Result) Year(year int) Money { return r.gains.Year(year) }

// TotalGain returns the capital gains over all the years.
func (r *Result) TotalGain() Money { return r.gains.Total() }

// Events returns the capital gain events, folded per settlement day and symbol.
func (r *Result) Events() []GainEvent { return r.gains.Events() }

// Annual returns the capital gain events rolled up per tax year and symbol.
func (r *Result) Annual() []AnnualGain { return r.gains.Annual() }

// AnnualOf returns the rollup of a single tax year.
func (r *Result) AnnualOf(year int) []AnnualGain {
	var annual []AnnualGain
	for _, a := range r.gains.Annual() {
		if a.Year == year {
			annual = append(annual, a)
		}
	}
	return annual
}
