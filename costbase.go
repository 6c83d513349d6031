package acb

import "fmt"

// AdjustedCostBase is the weighted-average cost base of a holding, in the
// reporting currency.
//
// It is a value type: every operation returns the updated cost base.
type AdjustedCostBase struct {
	Units Quantity
	Cost  Money // total cost
}

// CostPerUnit returns the average cost of one unit. It is undefined, and
// reported as not ok, when no units are held.
func (a AdjustedCostBase) CostPerUnit() (Money, bool) {
	if a.Units.IsZero() {
		return Money{cur: a.Cost.cur}, false
	}
	return a.Cost.Div(a.Units), true
}

// acquire adds units bought at price per unit, fees included in the cost.
func (a AdjustedCostBase) acquire(units Quantity, price, fees Money) AdjustedCostBase {
	return AdjustedCostBase{
		Units: a.Units.Add(units),
		Cost:  a.Cost.Add(price.Mul(units)).Add(fees),
	}
}

// dispose removes units at the current average cost. It returns the new
// cost base and the average cost per unit before the disposition.
func (a AdjustedCostBase) dispose(units Quantity) (AdjustedCostBase, Money, error) {
	perUnit, ok := a.CostPerUnit()
	if !ok {
		return a, perUnit, fmt.Errorf("%w: no units held to dispose of %s", ErrLedgerUnderflow, units)
	}
	remaining := a.Units.Sub(units).floor()
	next := AdjustedCostBase{
		Units: remaining,
		Cost:  a.Cost.Mul(remaining).Div(a.Units).floor(),
	}
	return next, perUnit, nil
}

// returnCapital reduces the cost, never below zero.
func (a AdjustedCostBase) returnCapital(amount Money) AdjustedCostBase {
	return AdjustedCostBase{Units: a.Units, Cost: a.Cost.Sub(amount).floor()}
}

// add combines two holdings of the same symbol.
func (a AdjustedCostBase) add(b AdjustedCostBase) AdjustedCostBase {
	return AdjustedCostBase{Units: a.Units.Add(b.Units), Cost: a.Cost.Add(b.Cost)}
}
