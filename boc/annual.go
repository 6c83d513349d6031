package boc

import "github.com/shopspring/decimal"

// annualUSDCAD are the Bank of Canada annual average USD to CAD rates.
var annualUSDCAD = map[int]string{
	2011: "0.98906920",
	2012: "0.99958008",
	2013: "1.02991480",
	2014: "1.10446640",
	2015: "1.2787",
	2016: "1.3248",
	2017: "1.2986",
	2018: "1.2957",
	2019: "1.3269",
	2020: "1.3415",
	2021: "1.2535",
	2022: "1.3013",
	2023: "1.3497",
	2024: "1.3698",
}

// annual returns the annual average rate of a currency into CAD, if published.
func annual(from string, year int) (decimal.Decimal, bool) {
	if from != "USD" {
		return decimal.Zero, false
	}
	v, ok := annualUSDCAD[year]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(v), true
}
