package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the outline of a markdown document: its headings and the
// number of body rows of each table, in order.
type document struct {
	headings []string
	tables   []int
}

func parse(t *testing.T, md string) document {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			doc.headings = append(doc.headings, plain(n, src))
			return ast.WalkSkipChildren, nil
		case east.KindTable:
			rows := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == east.KindTableRow {
					rows++
				}
			}
			doc.tables = append(doc.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return doc
}

// plain returns the text content of a node.
func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func tx(on date.Date, kind acb.Kind, symbol string, units, price float64) acb.Transaction {
	return acb.Transaction{
		Date:           on,
		SettlementDate: on,
		Symbol:         symbol,
		Kind:           kind,
		Units:          acb.Q(units),
		Value:          acb.M(price, "CAD"),
	}
}

func process(t *testing.T, events ...acb.Event) *acb.Result {
	t.Helper()
	p, err := acb.NewProcessor("CAD", acb.NewConverter(nil, nil), acb.UniformRate(acb.DailyNoon))
	require.NoError(t, err)
	res, err := p.Process(context.Background(), events)
	require.NoError(t, err)
	return res
}

func sample(t *testing.T) *acb.Result {
	return process(t,
		tx(date.New(2023, time.January, 3), acb.Buy, "GOOG", 10, 100),
		tx(date.New(2023, time.June, 1), acb.Sell, "GOOG", 5, 120),
		tx(date.New(2024, time.February, 1), acb.Buy, "DLR", 3, 10),
		tx(date.New(2024, time.March, 1), acb.Sell, "GOOG", 5, 80),
	)
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(sample(t), ReportOptions{Events: true, Holdings: true})
	doc := parse(t, md)

	assert.Equal(t, []string{"Capital Gains Report (CAD)", "2023", "2024", "Totals", "Events", "Holdings"}, doc.headings)
	assert.Equal(t, []int{1, 1, 3, 2, 1}, doc.tables)
	assert.Contains(t, md, "| GOOG | 5 | $600.00 | $500.00 | $0.00 | +$100.00 | 1 |")
	assert.Contains(t, md, "| **Total** | **-** |")
	assert.Contains(t, md, "| DLR | 3 | $30.00 | 10.0000 |")
}

func TestReportMarkdown_Year(t *testing.T) {
	md := ReportMarkdown(sample(t), ReportOptions{Year: 2024, Events: true})
	doc := parse(t, md)

	assert.Equal(t, []string{"Capital Gains Report (CAD)", "2024", "Totals", "Events"}, doc.headings)
	assert.Equal(t, []int{1, 3, 1}, doc.tables)
	assert.Contains(t, md, "| 2024 | -$100.00 |")
}

func TestReportMarkdown_Empty(t *testing.T) {
	md := ReportMarkdown(process(t), ReportOptions{Events: true, Holdings: true})
	doc := parse(t, md)

	assert.Equal(t, []string{"Capital Gains Report (CAD)"}, doc.headings)
	assert.Empty(t, doc.tables)
}

func TestRateMarkdown(t *testing.T) {
	on := date.New(2024, time.July, 1)
	md := RateMarkdown("USD", "CAD", acb.DailyNoon, on, on.Add(-3), decimal.RequireFromString("1.3687"))
	doc := parse(t, md)

	assert.Equal(t, []int{1}, doc.tables)
	assert.Contains(t, md, "| USD/CAD | daily noon | 2024-07-01 | 2024-06-28 | 1.3687 |")
}
