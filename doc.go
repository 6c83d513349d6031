// Package acb computes the Adjusted Cost Base (ACB) of security holdings and
// the capital gains or losses they realize, per tax year, in a single
// reporting currency.
//
// The core functionalities include:
//   - Cost Base Accounting: a weighted-average cost base per symbol, updated by
//     acquisitions, dispositions, returns of capital and corporate actions.
//   - Share Ledger: a FIFO stack of acquisition lots per symbol, used to date
//     dispositions and to flag units re-acquired inside the superficial-loss
//     window.
//   - Currency Conversion: historical exchange rates resolved through a
//     pluggable RateProvider, with bank-holiday fallback and layered caching.
//   - Gains Aggregation: capital gain events folded per settlement day and
//     rolled up per tax year and symbol.
//
// A Processor consumes a stream of Transaction and StockSplit events, sorted
// by settlement date, and produces a Result exposing the data needed by
// reports: holdings, per-year totals and annualized gain events.
package acb
