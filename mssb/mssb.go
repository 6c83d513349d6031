// Package mssb reads the stock plan history exported by Morgan Stanley Smith
// Barney: vesting events of restricted stock units and sales.
package mssb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout of the dates, like "04/25/2014".
const DateLayout = "01/02/2006"

// Currency of all the amounts.
const Currency = "USD"

// WithholdToCover is the tax payment method of a vesting event where part of
// the units are withheld to pay the taxes.
const WithholdToCover = "Withhold to Cover"

// Plans maps the plan names to the symbol of the units they grant.
var Plans = map[string]string{
	"Historical GSU": "GOOG.presplit",
	"GSU Class A":    "GOOGL",
	"GSU Class C":    "GOOG",
}

var notNumber = regexp.MustCompile(`[^0-9.]`)

// Parse reads the vesting events and sales of an MSSB export.
//
// Vesting events are ACQUIRE transactions settled the same day, sales are
// settled after the usual number of business days.
func Parse(r io.Reader) ([]acb.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	for header == nil {
		row, err := reader.Read()
		if err == io.EOF {
			return nil, errors.New("no \"Date\" header found")
		}
		if err != nil {
			return nil, err
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) == "Date" {
			header = row
		}
	}

	var transactions []acb.Transaction
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			break
		}
		day, err := date.ParseLayout(DateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			break
		}

		rec := make(map[string]string, len(header))
		for i := 0; i < len(header) && i < len(row); i++ {
			if v := strings.TrimSpace(row[i]); v != "" {
				rec[strings.TrimSpace(header[i])] = v
			}
		}

		var tx acb.Transaction
		switch {
		case rec["Tax Payment Method"] == WithholdToCover:
			tx, err = vest(day, rec)
		case rec["Type"] == "Sale":
			tx, err = sale(day, rec)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", line, row[0], err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func vest(day date.Date, rec map[string]string) (acb.Transaction, error) {
	symbol, err := plan(rec)
	if err != nil {
		return acb.Transaction{}, err
	}
	units, err := quantity(rec, "Quantity")
	if err != nil {
		return acb.Transaction{}, err
	}
	net, err := quantity(rec, "Net Share Proceeds")
	if err != nil {
		return acb.Transaction{}, err
	}
	price, err := amount(rec, "Price")
	if err != nil {
		return acb.Transaction{}, err
	}
	withheld := units.Sub(net)
	if withheld.IsNegative() {
		return acb.Transaction{}, fmt.Errorf("net shares %s exceed the %s vested", net, units)
	}
	return acb.Transaction{
		Date:           day,
		SettlementDate: day,
		Symbol:         symbol,
		Kind:           acb.Acquire,
		Units:          units,
		Value:          acb.M(price, Currency),
		Fees:           acb.M(0, Currency),
		Withheld:       withheld,
		Memo:           rec["Plan"],
	}, nil
}

func sale(day date.Date, rec map[string]string) (acb.Transaction, error) {
	symbol, err := plan(rec)
	if err != nil {
		return acb.Transaction{}, err
	}
	units, err := quantity(rec, "Quantity")
	if err != nil {
		return acb.Transaction{}, err
	}
	price, err := amount(rec, "Price")
	if err != nil {
		return acb.Transaction{}, err
	}
	proceeds, err := amount(rec, "Net Cash Proceeds")
	if err != nil {
		return acb.Transaction{}, err
	}
	// fees are whatever is missing from the gross proceeds.
	fees := price.Mul(units.Decimal()).Sub(proceeds)
	if fees.IsNegative() {
		fees = decimal.Zero
	}
	return acb.Transaction{
		Date:           day,
		SettlementDate: day.Settlement(),
		Symbol:         symbol,
		Kind:           acb.Sell,
		Units:          units,
		Value:          acb.M(price, Currency),
		Fees:           acb.M(fees, Currency),
		Memo:           rec["Plan"],
	}, nil
}

func plan(rec map[string]string) (string, error) {
	symbol, ok := Plans[rec["Plan"]]
	if !ok {
		return "", fmt.Errorf("unknown plan %q", rec["Plan"])
	}
	return symbol, nil
}

func quantity(rec map[string]string, column string) (acb.Quantity, error) {
	q, err := acb.ParseQuantity(notNumber.ReplaceAllString(rec[column], ""))
	if err != nil {
		return acb.Quantity{}, fmt.Errorf("invalid %s: %w", column, err)
	}
	return q, nil
}

func amount(rec map[string]string, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(notNumber.ReplaceAllString(rec[column], ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", column, rec[column], err)
	}
	return d, nil
}
