package acb

import (
	"fmt"
	"strings"
)

// Kind is the closed set of transaction kinds the engine knows about.
//
// The zero value is not a valid kind.
type Kind int

const (
	// Acquire is a vesting or grant: shares received at fair market value,
	// taxed as income elsewhere.
	Acquire Kind = iota + 1
	// Buy is a market purchase.
	Buy
	// Sell is a market sale, the only kind that realizes a capital gain.
	Sell
	// CapitalReturn reduces the cost base without changing the units held.
	CapitalReturn
	// Dividend is reported separately on tax slips and has no ACB effect.
	Dividend
	// Fee has no ACB effect.
	Fee
)

func (k Kind) String() string {
	switch k {
	case Acquire:
		return "ACQUIRE"
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case CapitalReturn:
		return "CAPITAL_RETURN"
	case Dividend:
		return "DIVIDEND"
	case Fee:
		return "FEE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsAcquisition reports whether k increases holdings.
func (k Kind) IsAcquisition() bool { return k == Acquire || k == Buy }

// ParseKind parses a transaction kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACQUIRE":
		return Acquire, nil
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	case "CAPITAL_RETURN", "CAPITAL RETURN":
		return CapitalReturn, nil
	case "DIVIDEND":
		return Dividend, nil
	case "FEE":
		return Fee, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTransactionKind, s)
	}
}
