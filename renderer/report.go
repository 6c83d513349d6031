package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/shopspring/decimal"
)

// ReportOptions selects the sections of a report.
type ReportOptions struct {
	Year     int  // restricts the annual summary to a tax year, zero means all
	Events   bool // lists every gain event
	Holdings bool // lists the remaining holdings
}

// ReportMarkdown renders a processing result as a markdown document.
func ReportMarkdown(res *acb.Result, opts ReportOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Capital Gains Report (%s)\n\n", res.Currency)

	AnnualMarkdown(&b, res, opts.Year)
	YearTotalsMarkdown(&b, res)
	if opts.Events {
		EventsMarkdown(&b, res, opts.Year)
	}
	if opts.Holdings {
		HoldingsMarkdown(&b, res)
	}
	return b.String()
}

// AnnualMarkdown writes the per symbol summary of each tax year.
func AnnualMarkdown(w io.Writer, res *acb.Result, year int) {
	annual := res.Annual()
	if year != 0 {
		annual = res.AnnualOf(year)
	}
	for i, a := range annual {
		if i == 0 || annual[i-1].Year != a.Year {
			fmt.Fprintf(w, "## %d\n\n", a.Year)
			fmt.Fprintln(w, "| Symbol | Units | Proceeds | Cost Basis | Expenses | Gain | Transactions |")
			fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|---:|")
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %d |\n",
			a.Symbol,
			a.Units,
			a.Proceeds,
			a.CostBasis,
			a.Expenses,
			a.Gain().SignedString(),
			a.Transactions,
		)
		if i+1 == len(annual) || annual[i+1].Year != a.Year {
			fmt.Fprintln(w)
		}
	}
}

// YearTotalsMarkdown writes the net capital gain of every tax year.
func YearTotalsMarkdown(w io.Writer, res *acb.Result) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprint(w, "## Totals\n\n")
		fmt.Fprintln(w, "| Year | Net Gain |")
		fmt.Fprintln(w, "|:---|---:|")
		years := res.YearTotals()
		for _, y := range years {
			fmt.Fprintf(w, "| %d | %s |\n", y.Year, y.Gain.SignedString())
		}
		fmt.Fprintf(w, "| **Total** | **%s** |\n\n", res.TotalGain().SignedString())
		return len(years) > 0
	})
}

// EventsMarkdown writes every gain event. Events with units acquired in the
// superficial-loss window are flagged.
func EventsMarkdown(w io.Writer, res *acb.Result, year int) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprint(w, "## Events\n\n")
		fmt.Fprintln(w, "| Settlement | Symbol | Acquired | Units | Proceeds | Cost Basis | Expenses | Gain | Washed |")
		fmt.Fprintln(w, "|:---|:---|:---|---:|---:|---:|---:|---:|---:|")
		count := 0
		for _, e := range res.Events() {
			if year != 0 && e.Settlement.Year() != year {
				continue
			}
			count++
			washed := "-"
			if e.Gain().IsNegative() && e.WashedUnits.IsPositive() {
				washed = e.WashedUnits.String()
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				e.Settlement,
				e.Symbol,
				e.Acquired,
				e.Units,
				e.Proceeds,
				e.CostBasis,
				e.Expenses,
				e.Gain().SignedString(),
				washed,
			)
		}
		fmt.Fprintln(w)
		return count > 0
	})
}

// HoldingsMarkdown writes the remaining holdings and their cost base.
func HoldingsMarkdown(w io.Writer, res *acb.Result) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprint(w, "## Holdings\n\n")
		fmt.Fprintln(w, "| Symbol | Units | Cost Base | Cost per Unit |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		holdings := res.Holdings()
		for _, h := range holdings {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", h.Symbol, h.Units, h.Cost, h.CostPerUnit.StringFixed(4))
		}
		fmt.Fprintln(w)
		return len(holdings) > 0
	})
}

// RateMarkdown renders a resolved exchange rate.
func RateMarkdown(from, to string, kind acb.RateKind, requested, effective date.Date, rate decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Pair | Kind | Requested | Effective | Rate |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|")
	fmt.Fprintf(&b, "| %s/%s | %s | %s | %s | %s |\n", from, to, kind, requested, effective, rate)
	return b.String()
}
