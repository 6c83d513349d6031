package acb

import (
	"fmt"
	"strings"
)

// RateKind names one of the exchange rates published for a day.
type RateKind int

const (
	DailyNoon RateKind = iota
	DailyClose
	DailyHigh
	DailyLow
	MonthlyNoon
	MonthlyClose
	MonthlyHigh
	MonthlyLow
	NinetyDayNoon
	NinetyDayClose
	Annual
)

var rateKindNames = [...]string{
	DailyNoon:      "daily noon",
	DailyClose:     "daily close",
	DailyHigh:      "daily high",
	DailyLow:       "daily low",
	MonthlyNoon:    "monthly noon",
	MonthlyClose:   "monthly close",
	MonthlyHigh:    "monthly high",
	MonthlyLow:     "monthly low",
	NinetyDayNoon:  "90-day noon",
	NinetyDayClose: "90-day close",
	Annual:         "annual",
}

// DailyKinds are the rates published every banking day.
var DailyKinds = []RateKind{DailyNoon, DailyClose, DailyHigh, DailyLow}

// MonthlyKinds are the rates published once a month.
var MonthlyKinds = []RateKind{MonthlyNoon, MonthlyClose, MonthlyHigh, MonthlyLow, NinetyDayNoon, NinetyDayClose}

// RateKinds returns all the known rate kinds.
func RateKinds() []RateKind {
	kinds := make([]RateKind, len(rateKindNames))
	for i := range rateKindNames {
		kinds[i] = RateKind(i)
	}
	return kinds
}

func (k RateKind) String() string {
	if k < 0 || int(k) >= len(rateKindNames) {
		return fmt.Sprintf("RateKind(%d)", int(k))
	}
	return rateKindNames[k]
}

// ParseRateKind parses a rate kind name like "daily noon". Dashes and
// underscores can be used instead of spaces.
func ParseRateKind(s string) (RateKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "daily-", "daily ", "monthly-", "monthly ", "day-", "day ").Replace(norm)
	for i, name := range rateKindNames {
		if name == norm {
			return RateKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRateKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k RateKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RateKind) UnmarshalText(text []byte) error {
	v, err := ParseRateKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
