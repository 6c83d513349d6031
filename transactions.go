package acb

import (
	"errors"
	"fmt"
	"sort"

	"github.com/etnz/acb/date"
)

// Event is an item of the stream consumed by a Processor: either a Transaction
// or a corporate action such as a StockSplit.
//
// The set of events is closed, the Processor dispatches over it exhaustively.
type Event interface {
	// Settlement returns the date the event settles, used for ordering and
	// tax-year attribution.
	Settlement() date.Date
	// Name returns a short description used in error reports.
	Name() string
	isEvent()
}

// Transaction is a single trade, income or expense on a security.
//
// Transactions are created by format adapters and are immutable.
type Transaction struct {
	Date           date.Date // trade date
	SettlementDate date.Date // date ownership transfers, never before Date
	Symbol         string
	Kind           Kind
	Units          Quantity
	Value          Money    // per-unit price or amount
	Fees           Money    // total fees for the transaction
	Withheld       Quantity // units withheld to cover taxes on an Acquire, informational
	Memo           string
}

func (t Transaction) Settlement() date.Date { return t.SettlementDate }
func (t Transaction) Name() string          { return t.Kind.String() }
func (Transaction) isEvent()                {}

// Total returns the total value of the transaction, units times per-unit value.
func (t Transaction) Total() Money { return t.Value.Mul(t.Units) }

// Validate checks a transaction for correctness. It returns all validation failures.
func (t Transaction) Validate() error {
	var errs []error
	if t.Symbol == "" {
		errs = append(errs, errors.New("symbol is missing"))
	}
	if t.Date.IsZero() || t.SettlementDate.IsZero() {
		errs = append(errs, fmt.Errorf("%w: trade and settlement dates are required", ErrInvalidDate))
	} else if t.SettlementDate.Before(t.Date) {
		errs = append(errs, fmt.Errorf("%w: settlement %s is before trade %s", ErrInvalidDate, t.SettlementDate, t.Date))
	}
	if t.Units.IsNegative() {
		errs = append(errs, fmt.Errorf("units must not be negative, got %s", t.Units))
	}
	switch t.Kind {
	case Acquire, Buy, Sell, CapitalReturn, Dividend, Fee:
	default:
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownTransactionKind, t.Kind))
	}
	return errors.Join(errs...)
}

// StockSplit is a corporate action that issues a new symbol To out of the
// holdings of From.
//
// Holders of From receive one unit of To per unit held, and To keeps the full
// cost base of From. From is re-based to a par value per unit, converted to
// the reporting currency on the settlement date.
type StockSplit struct {
	Date           date.Date
	SettlementDate date.Date
	From           string
	To             string
	ParValue       Money // per unit
}

func (s StockSplit) Settlement() date.Date { return s.SettlementDate }
func (s StockSplit) Name() string          { return "SPLIT " + s.From + "->" + s.To }
func (StockSplit) isEvent()                {}

// GoogleSplit2014 is the April 2014 Google share class split: Class A GOOG
// became GOOGL keeping its cost base, and one Class C GOOG share with a par
// value of USD 0.001 was issued per share.
func GoogleSplit2014() StockSplit {
	on := date.New(2014, 4, 2)
	return StockSplit{
		Date:           on,
		SettlementDate: on,
		From:           "GOOG",
		To:             "GOOGL",
		ParValue:       M(0.001, "USD"),
	}
}

// SortEvents sorts events by settlement date. The sort is stable so that
// events settling the same day keep their input order.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Settlement().Before(events[j].Settlement())
	})
}
