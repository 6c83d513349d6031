package acb

import (
	"time"

	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
)

// CAD is a helper for test to create canadian dollars from const
func CAD(v float64) Money { return M(v, "CAD") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create a date in 2024.
func day(m time.Month, d int) date.Date { return date.New(2024, m, d) }

// dec parses a decimal literal, panicking on error.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
