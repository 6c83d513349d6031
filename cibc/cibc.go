// Package cibc reads the transaction history exported by CIBC Investor's Edge.
//
// The export is a CSV file with a few lines of account information, a header
// row starting with "Transaction Date", the transactions, and a footer.
package cibc

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

// DateLayout is the layout of the transaction dates, like "March 28, 2014".
const DateLayout = "January 2, 2006"

// Currency of the commissions.
const Currency = "CAD"

var (
	kinds = map[string]acb.Kind{
		"Buy":  acb.Buy,
		"Sell": acb.Sell,
	}
	// descriptions of the securities exported without a symbol.
	symbols = map[string]string{
		"HORIZONS U S DLR CURRENCY ETF": "DLR",
	}
	notNumber = regexp.MustCompile(`[^0-9.]`)
)

// Parse reads the transactions of a CIBC export. Only buys and sales are
// returned, other transaction types are skipped.
func Parse(r io.Reader) ([]acb.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	for header == nil {
		row, err := reader.Read()
		if err == io.EOF {
			return nil, errors.New("no \"Transaction Date\" header found")
		}
		if err != nil {
			return nil, err
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) == "Transaction Date" {
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
		// records stop at the first row that does not start with a date.
		if len(row) == 0 {
			break
		}
		day, err := date.ParseLayout(DateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			break
		}
		rec := record(header, row)

		kind, ok := kinds[rec["Transaction Type"]]
		if !ok {
			continue
		}
		tx, err := transaction(day, kind, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", line, row[0], err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// record maps the non empty cells of row by their header.
func record(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i := 0; i < len(header) && i < len(row); i++ {
		if v := strings.TrimSpace(row[i]); v != "" {
			rec[strings.TrimSpace(header[i])] = v
		}
	}
	return rec
}

func transaction(day date.Date, kind acb.Kind, rec map[string]string) (acb.Transaction, error) {
	symbol, err := inferSymbol(rec)
	if err != nil {
		return acb.Transaction{}, err
	}
	units, err := acb.ParseQuantity(notNumber.ReplaceAllString(rec["Quantity"], ""))
	if err != nil {
		return acb.Transaction{}, err
	}
	price, err := number(rec, "Price")
	if err != nil {
		return acb.Transaction{}, err
	}
	commission, err := number(rec, "Commission")
	if err != nil {
		return acb.Transaction{}, err
	}
	cur := rec["Currency of Amount"]
	if err := acb.ValidateCurrency(cur); err != nil {
		return acb.Transaction{}, err
	}
	return acb.Transaction{
		Date:           day,
		SettlementDate: day.Settlement(),
		Symbol:         symbol,
		Kind:           kind,
		Units:          units,
		Value:          acb.M(price, cur),
		Fees:           acb.M(commission, Currency),
		Memo:           rec["Description"],
	}, nil
}

// number parses a column keeping only digits and the decimal point. A missing
// column is zero.
func number(rec map[string]string, column string) (decimal.Decimal, error) {
	v := notNumber.ReplaceAllString(rec[column], "")
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", column, rec[column], err)
	}
	return d, nil
}

func inferSymbol(rec map[string]string) (string, error) {
	if s, ok := rec["Symbol"]; ok {
		return s, nil
	}
	desc := rec["Description"]
	for prefix, symbol := range symbols {
		if strings.HasPrefix(desc, prefix) {
			return symbol, nil
		}
	}
	return "", fmt.Errorf("unknown property %q", desc)
}
