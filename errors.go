package acb

import (
	"errors"
	"fmt"

	"github.com/etnz/acb/date"
)

// Errors reported by the engine. All of them are fatal to a run: skipping a
// transaction would corrupt the cost base of its symbol for the rest of history.
var (
	ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")
	ErrUnknownRateKind         = errors.New("unknown rate kind")
	ErrRateUnavailable         = errors.New("rate unavailable")
	ErrUnknownTransactionKind  = errors.New("unknown transaction kind")
	ErrLedgerUnderflow         = errors.New("ledger underflow")
	ErrInvalidDate             = errors.New("invalid date")
)

// TransactionError reports the stream item that caused a run to abort.
type TransactionError struct {
	Index  int       // position in the settlement-ordered stream
	Date   date.Date // settlement date
	Symbol string
	What   string // transaction kind or corporate action name
	Err    error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("#%d %s %s %s: %v", e.Index, e.Date, e.What, e.Symbol, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
