package acb

import (
	"fmt"
	"sort"

	"github.com/etnz/acb/date"
)

// Lot is a quantity of a security acquired on a given day.
type Lot struct {
	Date  date.Date
	Units Quantity
	Cost  Money // Total cost of the lot (units * price)
}

// ShareLedger is the stack of acquisition lots of a single symbol, oldest
// first. Lots are consumed in FIFO order.
//
// The ledger is only used to date dispositions and to identify units acquired
// inside the superficial-loss window: the cost used to compute gains is the
// weighted average held by AdjustedCostBase.
type ShareLedger struct {
	lots []Lot
}

// Popped describes the lots consumed by a ShareLedger.Pop.
type Popped struct {
	Oldest      date.Date // acquisition date of the oldest lot touched
	WashedUnits Quantity  // units consumed from lots acquired on or after the wash date
	WashedCost  Money     // cost of the washed units
}

// Units returns the total number of units held in the ledger.
func (l *ShareLedger) Units() Quantity {
	var total Quantity
	for _, lot := range l.lots {
		total = total.Add(lot.Units)
	}
	return total
}

// Len returns the number of lots.
func (l *ShareLedger) Len() int { return len(l.lots) }

// Lots returns a copy of the lots, oldest first.
func (l *ShareLedger) Lots() []Lot {
	return append([]Lot(nil), l.lots...)
}

// Clone returns an independent copy of the ledger.
func (l *ShareLedger) Clone() *ShareLedger {
	return &ShareLedger{lots: l.Lots()}
}

// Push records an acquisition. Acquisitions settling the same day as the
// newest lot are merged into it.
func (l *ShareLedger) Push(units Quantity, cost Money, on date.Date) {
	if last := len(l.lots) - 1; last >= 0 && l.lots[last].Date == on {
		l.lots[last].Units = l.lots[last].Units.Add(units)
		l.lots[last].Cost = l.lots[last].Cost.Add(cost)
		return
	}
	l.lots = append(l.lots, Lot{Date: on, Units: units, Cost: cost})
}

// Pop consumes units, oldest lot first.
//
// Lots acquired on or after noWashBefore contribute to the washed subtotal of
// the result. Asking for more units than the ledger holds returns
// ErrLedgerUnderflow and leaves the ledger untouched.
func (l *ShareLedger) Pop(units Quantity, noWashBefore date.Date) (Popped, error) {
	var p Popped
	if units.IsZero() {
		return p, nil
	}
	if available := l.Units(); available.LessThan(units) {
		return p, fmt.Errorf("%w: cannot take %s units out of %s", ErrLedgerUnderflow, units, available)
	}

	touch := func(lot Lot, consumed Quantity, cost Money) {
		if p.Oldest.IsZero() {
			p.Oldest = lot.Date
		}
		if !lot.Date.Before(noWashBefore) {
			p.WashedUnits = p.WashedUnits.Add(consumed)
			p.WashedCost = p.WashedCost.Add(cost)
		}
	}

	// Consume whole lots until the oldest one is big enough to cover the rest.
	for l.lots[0].Units.LessThan(units) {
		head := l.lots[0]
		units = units.Sub(head.Units)
		touch(head, head.Units, head.Cost)
		l.lots = l.lots[1:]
	}

	// The head lot covers the remaining units, its cost is split proportionally.
	head := &l.lots[0]
	remaining := head.Units.Sub(units)
	cost := head.Cost.Mul(remaining).Div(head.Units)
	touch(*head, units, head.Cost.Sub(cost))
	head.Units, head.Cost = remaining, cost
	if head.Units.IsZero() {
		l.lots = l.lots[1:]
	}
	return p, nil
}

// rebase distributes a new total cost over the lots, proportionally to their units.
func (l *ShareLedger) rebase(total Money) {
	units := l.Units()
	if units.IsZero() {
		return
	}
	for i := range l.lots {
		l.lots[i].Cost = total.Mul(l.lots[i].Units).Div(units)
	}
}

// merge adds the lots of o into l, keeping the chronological order.
func (l *ShareLedger) merge(o *ShareLedger) {
	l.lots = append(l.lots, o.lots...)
	sort.SliceStable(l.lots, func(i, j int) bool { return l.lots[i].Date.Before(l.lots[j].Date) })
	merged := l.lots[:0]
	for _, lot := range l.lots {
		if n := len(merged); n > 0 && merged[n-1].Date == lot.Date {
			merged[n-1].Units = merged[n-1].Units.Add(lot.Units)
			merged[n-1].Cost = merged[n-1].Cost.Add(lot.Cost)
			continue
		}
		merged = append(merged, lot)
	}
	l.lots = merged
}
