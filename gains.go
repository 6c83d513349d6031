package acb

import (
	"sort"

	"github.com/etnz/acb/date"
)

// Disposition is the outcome of a single sale, in the reporting currency.
type Disposition struct {
	Settlement  date.Date
	Symbol      string
	Units       Quantity
	Acquired    date.Date // oldest lot touched
	Proceeds    Money     // units * price
	CostBasis   Money     // units * average cost per unit
	Expenses    Money
	WashedUnits Quantity // units re-acquired inside the superficial-loss window
	WashedCost  Money
}

// Gain returns the capital gain (or loss, if negative) of the disposition.
func (d Disposition) Gain() Money { return d.Proceeds.Sub(d.CostBasis).Sub(d.Expenses) }

// GainEvent is a capital gain or loss on a symbol, folded over all the
// dispositions settling the same day.
type GainEvent struct {
	Settlement  date.Date
	Symbol      string
	Units       Quantity
	Acquired    date.Date // latest acquisition date seen among the folded dispositions
	Proceeds    Money
	CostBasis   Money
	Expenses    Money
	Lots        int // number of dispositions folded
	WashedUnits Quantity
	WashedCost  Money
}

// Gain returns the net capital gain of the event.
func (e GainEvent) Gain() Money { return e.Proceeds.Sub(e.CostBasis).Sub(e.Expenses) }

// AnnualGain is the rollup of the gain events of a symbol over a tax year.
type AnnualGain struct {
	Year         int
	Symbol       string
	Units        Quantity
	Proceeds     Money
	CostBasis    Money
	Expenses     Money
	Transactions int // number of gain events rolled up
	WashedUnits  Quantity
}

// Gain returns the net capital gain of the symbol over the year.
func (a AnnualGain) Gain() Money { return a.Proceeds.Sub(a.CostBasis).Sub(a.Expenses) }

// YearGain is the total capital gain of a tax year.
type YearGain struct {
	Year int
	Gain Money
}

type eventKey struct {
	on     date.Date
	symbol string
}

// Gains aggregates capital gains per tax year and per (settlement day, symbol).
//
// Superficial losses are tracked, not applied: every gain or loss is booked
// and the units re-acquired inside the window are carried on the events for
// manual adjustment.
type Gains struct {
	cur    string
	years  map[int]Money
	events map[eventKey]*GainEvent
}

// NewGains returns an empty aggregator in the given reporting currency.
func NewGains(currency string) *Gains {
	return &Gains{
		cur:    currency,
		years:  make(map[int]Money),
		events: make(map[eventKey]*GainEvent),
	}
}

// touch makes sure a tax year is reported, even with no gain.
func (g *Gains) touch(year int) {
	if _, ok := g.years[year]; !ok {
		g.years[year] = M(0, g.cur)
	}
}

// Record books a disposition. Dispositions with no gain nor loss count
// towards the year total but are not recorded as events.
func (g *Gains) Record(d Disposition) {
	year := d.Settlement.Year()
	g.touch(year)
	gain := d.Gain()
	g.years[year] = g.years[year].Add(gain)
	if gain.IsZero() {
		return
	}

	key := eventKey{d.Settlement, d.Symbol}
	e, ok := g.events[key]
	if !ok {
		e = &GainEvent{
			Settlement: d.Settlement,
			Symbol:     d.Symbol,
			Acquired:   d.Acquired,
			Proceeds:   M(0, g.cur),
			CostBasis:  M(0, g.cur),
			Expenses:   M(0, g.cur),
			WashedCost: M(0, g.cur),
		}
		g.events[key] = e
	}
	e.Units = e.Units.Add(d.Units)
	if d.Acquired.After(e.Acquired) {
		e.Acquired = d.Acquired
	}
	e.Proceeds = e.Proceeds.Add(d.Proceeds)
	e.CostBasis = e.CostBasis.Add(d.CostBasis)
	e.Expenses = e.Expenses.Add(d.Expenses)
	e.WashedUnits = e.WashedUnits.Add(d.WashedUnits)
	e.WashedCost = e.WashedCost.Add(d.WashedCost)
	e.Lots++
}

// Year returns the total gain of a tax year.
func (g *Gains) Year(year int) Money {
	if v, ok := g.years[year]; ok {
		return v
	}
	return M(0, g.cur)
}

// Years returns the per-year totals, sorted by year.
func (g *Gains) Years() []YearGain {
	years := make([]YearGain, 0, len(g.years))
	for y, v := range g.years {
		years = append(years, YearGain{Year: y, Gain: v})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years
}

// Total returns the sum of all the years' gains.
func (g *Gains) Total() Money {
	total := M(0, g.cur)
	for _, v := range g.years {
		total = total.Add(v)
	}
	return total
}

// Events returns the gain events sorted by settlement date then symbol.
func (g *Gains) Events() []GainEvent {
	events := make([]GainEvent, 0, len(g.events))
	for _, e := range g.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool {
		if c := events[i].Settlement.Compare(events[j].Settlement); c != 0 {
			return c < 0
		}
		return events[i].Symbol < events[j].Symbol
	})
	return events
}

// Annual rolls the gain events up by tax year and symbol, sorted by year then
// symbol. Symbols whose events net to zero over a year are left out.
func (g *Gains) Annual() []AnnualGain {
	type key struct {
		year   int
		symbol string
	}
	index := make(map[key]int)
	var annual []AnnualGain
	for _, e := range g.Events() {
		k := key{e.Settlement.Year(), e.Symbol}
		i, ok := index[k]
		if !ok {
			i = len(annual)
			index[k] = i
			annual = append(annual, AnnualGain{
				Year:      k.year,
				Symbol:    k.symbol,
				Proceeds:  M(0, g.cur),
				CostBasis: M(0, g.cur),
				Expenses:  M(0, g.cur),
			})
		}
		a := &annual[i]
		a.Units = a.Units.Add(e.Units)
		a.Proceeds = a.Proceeds.Add(e.Proceeds)
		a.CostBasis = a.CostBasis.Add(e.CostBasis)
		a.Expenses = a.Expenses.Add(e.Expenses)
		a.WashedUnits = a.WashedUnits.Add(e.WashedUnits)
		a.Transactions++
	}
	nonZero := annual[:0]
	for _, a := range annual {
		if !a.Gain().IsZero() {
			nonZero = append(nonZero, a)
		}
	}
	annual = nonZero
	sort.SliceStable(annual, func(i, j int) bool {
		if annual[i].Year != annual[j].Year {
			return annual[i].Year < annual[j].Year
		}
		return annual[i].Symbol < annual[j].Symbol
	})
	return annual
}
