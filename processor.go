package acb

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/acb/date"
	"github.com/golang/glog"
)

// DefaultWashDays is the superficial-loss window: units acquired up to that
// many days before a sale are flagged on its gain event.
const DefaultWashDays = 30

// State is the lifecycle state of a Processor.
type State int

const (
	Idle State = iota
	Processing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Processor computes cost bases and capital gains from a stream of events.
//
// A Processor runs once: it goes from Idle to Processing when Process is
// called, and to Done when the whole stream has been consumed successfully.
type Processor struct {
	currency  string
	converter *Converter
	policy    RatePolicy
	washDays  int
	state     State

	acbs    map[string]AdjustedCostBase
	ledgers map[string]*ShareLedger
	gains   *Gains
}

// Option configures a Processor.
type Option func(*Processor)

// WithWashDays sets the superficial-loss window, in days.
func WithWashDays(days int) Option {
	return func(p *Processor) { p.washDays = days }
}

// NewProcessor returns an Idle processor reporting in currency, converting
// foreign amounts with converter according to policy.
func NewProcessor(currency string, converter *Converter, policy RatePolicy, opts ...Option) (*Processor, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid reporting currency: %w", err)
	}
	if converter == nil {
		return nil, errors.New("a currency converter is required")
	}
	p := &Processor{
		currency:  currency,
		converter: converter,
		policy:    policy,
		washDays:  DefaultWashDays,
		acbs:      make(map[string]AdjustedCostBase),
		ledgers:   make(map[string]*ShareLedger),
		gains:     NewGains(currency),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns the current state of the processor.
func (p *Processor) State() State { return p.state }

// Process consumes the events in settlement-date order and returns the final
// state. The input slice is not modified.
//
// Any error is fatal: the run stops at the offending event and the error is a
// *TransactionError describing it.
func (p *Processor) Process(ctx context.Context, events []Event) (*Result, error) {
	if p.state != Idle {
		return nil, fmt.Errorf("processor is %s, it can only process one stream", p.state)
	}
	p.state = Processing

	stream := append([]Event(nil), events...)
	SortEvents(stream)

	for i, e := range stream {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		switch v := e.(type) {
		case Transaction:
			err = p.transaction(ctx, v)
		case StockSplit:
			err = p.split(ctx, v)
		default:
			err = fmt.Errorf("%w: %T", ErrUnknownTransactionKind, e)
		}
		if err != nil {
			te := &TransactionError{Index: i, Date: e.Settlement(), What: e.Name(), Err: err}
			switch v := e.(type) {
			case Transaction:
				te.Symbol = v.Symbol
			case StockSplit:
				te.Symbol = v.From
			}
			return nil, te
		}
	}

	p.state = Done
	return &Result{
		Currency: p.currency,
		acbs:     p.acbs,
		ledgers:  p.ledgers,
		gains:    p.gains,
	}, nil
}

// convert converts m into the reporting currency.
func (p *Processor) convert(ctx context.Context, m Money, on date.Date, kind RateKind) (Money, error) {
	if m.Currency() == "" {
		// amounts with no currency are already in the reporting one.
		return M(m.Amount(), p.currency), nil
	}
	return p.converter.Convert(ctx, m, p.currency, on, kind)
}

// costBase returns the cost base of symbol, creating it if needed.
func (p *Processor) costBase(symbol string) AdjustedCostBase {
	a, ok := p.acbs[symbol]
	if !ok {
		a = AdjustedCostBase{Cost: M(0, p.currency)}
		p.acbs[symbol] = a
	}
	return a
}

// ledger returns the share ledger of symbol, creating it if needed.
func (p *Processor) ledger(symbol string) *ShareLedger {
	l, ok := p.ledgers[symbol]
	if !ok {
		l = &ShareLedger{}
		p.ledgers[symbol] = l
	}
	return l
}

func (p *Processor) transaction(ctx context.Context, tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	on := tx.SettlementDate
	kind := p.policy.For(tx.Kind)
	glog.V(2).Infof("%s %s %s %s @ %s", on, tx.Kind, tx.Units, tx.Symbol, tx.Value)

	fees, err := p.convert(ctx, tx.Fees, on, kind)
	if err != nil {
		return fmt.Errorf("cannot convert fees: %w", err)
	}
	a := p.costBase(tx.Symbol)
	l := p.ledger(tx.Symbol)
	p.gains.touch(on.Year())

	switch {
	case tx.Kind.IsAcquisition():
		price, err := p.convert(ctx, tx.Value, on, kind)
		if err != nil {
			return fmt.Errorf("cannot convert price: %w", err)
		}
		p.acbs[tx.Symbol] = a.acquire(tx.Units, price, fees)
		l.Push(tx.Units, price.Mul(tx.Units), on)

	case tx.Kind == Sell:
		price, err := p.convert(ctx, tx.Value, on, kind)
		if err != nil {
			return fmt.Errorf("cannot convert price: %w", err)
		}
		popped, err := l.Pop(tx.Units, on.Add(-p.washDays))
		if err != nil {
			return err
		}
		next, perUnit, err := a.dispose(tx.Units)
		if err != nil {
			return err
		}
		p.acbs[tx.Symbol] = next
		p.gains.Record(Disposition{
			Settlement:  on,
			Symbol:      tx.Symbol,
			Units:       tx.Units,
			Acquired:    popped.Oldest,
			Proceeds:    price.Mul(tx.Units),
			CostBasis:   perUnit.Mul(tx.Units),
			Expenses:    fees,
			WashedUnits: popped.WashedUnits,
			WashedCost:  popped.WashedCost,
		})

	case tx.Kind == CapitalReturn:
		amount := tx.Value
		if tx.Units.IsPositive() {
			amount = tx.Total()
		}
		returned, err := p.convert(ctx, amount, on, kind)
		if err != nil {
			return fmt.Errorf("cannot convert capital return: %w", err)
		}
		p.acbs[tx.Symbol] = a.returnCapital(returned)

	case tx.Kind == Dividend || tx.Kind == Fee:
		// reported on tax slips, no effect on the cost base.

	default:
		return fmt.Errorf("%w: %s", ErrUnknownTransactionKind, tx.Kind)
	}
	return nil
}

// split applies a StockSplit: To inherits the cost base and lots of From, and
// From is re-based to its par value.
func (p *Processor) split(ctx context.Context, s StockSplit) error {
	if s.From == "" || s.To == "" || s.From == s.To {
		return fmt.Errorf("invalid split from %q to %q", s.From, s.To)
	}
	src, ok := p.acbs[s.From]
	if !ok {
		glog.V(1).Infof("%s: no %s held, nothing to split", s.SettlementDate, s.From)
		return nil
	}

	par, err := p.convert(ctx, s.ParValue, s.SettlementDate, p.policy.Other)
	if err != nil {
		return fmt.Errorf("cannot convert par value: %w", err)
	}

	p.acbs[s.To] = p.costBase(s.To).add(src)
	rebased := AdjustedCostBase{Units: src.Units, Cost: par.Mul(src.Units)}
	p.acbs[s.From] = rebased

	if l, ok := p.ledgers[s.From]; ok {
		p.ledger(s.To).merge(l.Clone())
		l.rebase(rebased.Cost)
	}
	return nil
}
