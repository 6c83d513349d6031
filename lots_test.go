package acb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLedger_PushMergesSameDay(t *testing.T) {
	var l ShareLedger
	l.Push(Q(10), CAD(100), day(time.January, 2))
	l.Push(Q(5), CAD(60), day(time.January, 2))
	l.Push(Q(1), CAD(11), day(time.January, 3))

	require.Equal(t, 2, l.Len())
	lots := l.Lots()
	assert.True(t, lots[0].Units.Equal(Q(15)), "units = %s, want 15", lots[0].Units)
	assert.True(t, lots[0].Cost.Equal(CAD(160)), "cost = %s, want 160", lots[0].Cost)
	assert.Equal(t, day(time.January, 3), lots[1].Date)
	assert.True(t, l.Units().Equal(Q(16)))
}

func TestShareLedger_PopFIFO(t *testing.T) {
	var l ShareLedger
	l.Push(Q(100), CAD(1000), day(time.January, 2))
	l.Push(Q(50), CAD(600), day(time.January, 5))

	p, err := l.Pop(Q(120), day(time.March, 1))
	require.NoError(t, err)

	assert.Equal(t, day(time.January, 2), p.Oldest)
	assert.True(t, p.WashedUnits.IsZero(), "nothing was acquired after the wash date")

	lots := l.Lots()
	require.Len(t, lots, 1)
	assert.Equal(t, day(time.January, 5), lots[0].Date)
	assert.True(t, lots[0].Units.Equal(Q(30)), "units = %s, want 30", lots[0].Units)
	assert.True(t, lots[0].Cost.Equal(CAD(360)), "cost = %s, want 360", lots[0].Cost)
}

func TestShareLedger_PopWashed(t *testing.T) {
	var l ShareLedger
	l.Push(Q(10), CAD(100), day(time.January, 2))
	l.Push(Q(10), CAD(200), day(time.January, 25))

	p, err := l.Pop(Q(15), day(time.January, 20))
	require.NoError(t, err)

	assert.True(t, p.WashedUnits.Equal(Q(5)), "washed units = %s, want 5", p.WashedUnits)
	assert.True(t, p.WashedCost.Equal(CAD(100)), "washed cost = %s, want 100", p.WashedCost)
	assert.Equal(t, day(time.January, 2), p.Oldest)
}

func TestShareLedger_PopWholeLot(t *testing.T) {
	var l ShareLedger
	l.Push(Q(10), CAD(100), day(time.January, 2))
	l.Push(Q(10), CAD(100), day(time.January, 3))

	p, err := l.Pop(Q(10), day(time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, day(time.January, 2), p.Oldest)
	assert.Equal(t, 1, l.Len())

	_, err = l.Pop(Q(10), day(time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Units().IsZero())
}

func TestShareLedger_PopZero(t *testing.T) {
	var l ShareLedger
	l.Push(Q(10), CAD(100), day(time.January, 2))

	p, err := l.Pop(Q(0), day(time.January, 1))
	require.NoError(t, err)
	assert.True(t, p.Oldest.IsZero())
	assert.True(t, l.Units().Equal(Q(10)))
}

func TestShareLedger_PopUnderflow(t *testing.T) {
	var l ShareLedger
	l.Push(Q(10), CAD(100), day(time.January, 2))
	l.Push(Q(5), CAD(50), day(time.January, 3))
	before := l.Lots()

	_, err := l.Pop(Q(16), day(time.January, 1))
	require.ErrorIs(t, err, ErrLedgerUnderflow)
	assert.Equal(t, before, l.Lots(), "a failed pop must leave the ledger untouched")

	var empty ShareLedger
	_, err = empty.Pop(Q(1), day(time.January, 1))
	assert.ErrorIs(t, err, ErrLedgerUnderflow)
}

func TestShareLedger_Conservation(t *testing.T) {
	var l ShareLedger
	pushed, popped := Q(0), Q(0)
	for i, units := range []float64{10, 2.5, 7, 0.25, 30} {
		l.Push(Q(units), CAD(units*10), day(time.February, i+1))
		pushed = pushed.Add(Q(units))
	}
	for _, units := range []float64{3, 9.75, 0.25, 12} {
		_, err := l.Pop(Q(units), day(time.January, 1))
		require.NoError(t, err)
		popped = popped.Add(Q(units))
	}
	assert.True(t, l.Units().Equal(pushed.Sub(popped)), "units = %s, want %s", l.Units(), pushed.Sub(popped))
}

func TestShareLedger_RebaseAndMerge(t *testing.T) {
	var a ShareLedger
	a.Push(Q(30), CAD(300), day(time.January, 2))
	a.Push(Q(10), CAD(200), day(time.January, 9))

	b := a.Clone()
	a.rebase(CAD(4))
	lots := a.Lots()
	assert.True(t, lots[0].Cost.Equal(CAD(3)), "cost = %s, want 3", lots[0].Cost)
	assert.True(t, lots[1].Cost.Equal(CAD(1)), "cost = %s, want 1", lots[1].Cost)
	assert.True(t, b.Lots()[0].Cost.Equal(CAD(300)), "clone must not share lots")

	var c ShareLedger
	c.Push(Q(1), CAD(10), day(time.January, 5))
	c.Push(Q(1), CAD(10), day(time.January, 9))
	c.merge(b)
	merged := c.Lots()
	require.Len(t, merged, 3)
	assert.Equal(t, day(time.January, 2), merged[0].Date)
	assert.Equal(t, day(time.January, 5), merged[1].Date)
	assert.True(t, merged[2].Units.Equal(Q(11)), "same day lots are merged")
}
