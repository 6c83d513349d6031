package acb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedCostBase_Acquire(t *testing.T) {
	a := AdjustedCostBase{Cost: CAD(0)}
	a = a.acquire(Q(100), CAD(10), CAD(5))
	a = a.acquire(Q(50), CAD(12), CAD(0))

	assert.True(t, a.Units.Equal(Q(150)))
	assert.True(t, a.Cost.Equal(CAD(1605)), "cost = %s, want 1605", a.Cost)
	perUnit, ok := a.CostPerUnit()
	require.True(t, ok)
	assert.True(t, perUnit.Amount().Equal(dec("10.7")), "per unit = %s, want 10.70", perUnit)
}

func TestAdjustedCostBase_Dispose(t *testing.T) {
	a := AdjustedCostBase{Cost: CAD(0)}.acquire(Q(100), CAD(10), CAD(5))

	next, perUnit, err := a.dispose(Q(40))
	require.NoError(t, err)
	assert.True(t, perUnit.Amount().Equal(dec("10.05")), "per unit = %s, want 10.05", perUnit)
	assert.True(t, next.Units.Equal(Q(60)))
	assert.True(t, next.Cost.Equal(CAD(603)), "cost = %s, want 603", next.Cost)

	// the average cost per unit is not changed by a disposition.
	after, _ := next.CostPerUnit()
	assert.True(t, after.Equal(perUnit), "per unit after = %s, want %s", after, perUnit)

	empty, _, err := next.dispose(Q(60))
	require.NoError(t, err)
	assert.True(t, empty.Units.IsZero())
	assert.True(t, empty.Cost.IsZero())
	_, ok := empty.CostPerUnit()
	assert.False(t, ok, "cost per unit is undefined with no units")

	_, _, err = empty.dispose(Q(1))
	assert.ErrorIs(t, err, ErrLedgerUnderflow)
}

func TestAdjustedCostBase_ReturnCapital(t *testing.T) {
	a := AdjustedCostBase{Cost: CAD(0)}.acquire(Q(10), CAD(10), CAD(0))

	a = a.returnCapital(CAD(30))
	assert.True(t, a.Cost.Equal(CAD(70)), "cost = %s, want 70", a.Cost)
	assert.True(t, a.Units.Equal(Q(10)), "units are not changed by a return of capital")

	a = a.returnCapital(CAD(100))
	assert.True(t, a.Cost.IsZero(), "cost is floored at zero, got %s", a.Cost)
	assert.False(t, a.Cost.IsNegative())
}

func TestAdjustedCostBase_Add(t *testing.T) {
	a := AdjustedCostBase{Units: Q(10), Cost: CAD(100)}
	b := AdjustedCostBase{Units: Q(5), Cost: CAD(80)}
	c := a.add(b)
	assert.True(t, c.Units.Equal(Q(15)))
	assert.True(t, c.Cost.Equal(CAD(180)))
}
