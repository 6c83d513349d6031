package cibc

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `Account,Investor's Edge 123-45678
Period,"January 1, 2014 to December 31, 2014"

Transaction Date,Settlement Date,Currency of Sub-account Held In,Transaction Type,Symbol,Market,Description,Quantity,Currency of Price,Price,Commission,Exchange Rate,Currency of Amount,Amount
"March 28, 2014","April 2, 2014",CAD,Buy,,,"HORIZONS U S DLR CURRENCY ETF  UNITS",100,CAD,$10.44,$6.95,,CAD,"-$1,050.95"
"March 31, 2014","April 3, 2014",USD,Dividend,XYZ,US,"XYZ CORP",,,,,,USD,$12.00
"June 2, 2014","June 5, 2014",USD,Sell,GOOGL,US,"GOOGLE INC CL A","-1,200",USD,$571.10,$6.95,,USD,"$685,313.05"

Total,,,,,,,,,,,,,
`

func TestParse(t *testing.T) {
	txs, err := Parse(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	buy := txs[0]
	assert.Equal(t, "DLR", buy.Symbol)
	assert.Equal(t, acb.Buy, buy.Kind)
	assert.Equal(t, date.New(2014, time.March, 28), buy.Date)
	assert.Equal(t, date.New(2014, time.April, 2), buy.SettlementDate)
	assert.True(t, buy.Units.Equal(acb.Q(100)))
	assert.True(t, buy.Value.Equal(acb.M(10.44, "CAD")), "price = %v", buy.Value)
	assert.True(t, buy.Fees.Equal(acb.M(6.95, "CAD")), "fees = %v", buy.Fees)

	sell := txs[1]
	assert.Equal(t, "GOOGL", sell.Symbol)
	assert.Equal(t, acb.Sell, sell.Kind)
	assert.True(t, sell.Units.Equal(acb.Q(1200)), "units = %v", sell.Units)
	assert.True(t, sell.Value.Equal(acb.M(571.10, "USD")))
	assert.Equal(t, "CAD", sell.Fees.Currency())
	assert.Equal(t, date.New(2014, time.June, 5), sell.SettlementDate)
	for _, tx := range txs {
		assert.NoError(t, tx.Validate())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no header",
			input: "Account,123\n",
			want:  "no \"Transaction Date\" header",
		},
		{
			name: "unknown property",
			input: "Transaction Date,Transaction Type,Description,Quantity,Price,Commission,Currency of Amount\n" +
				"\"May 1, 2014\",Buy,SOMETHING ELSE,1,$1,$0,CAD\n",
			want: "unknown property \"SOMETHING ELSE\"",
		},
		{
			name: "unknown currency",
			input: "Transaction Date,Transaction Type,Symbol,Quantity,Price,Commission,Currency of Amount\n" +
				"\"May 1, 2014\",Buy,GOOG,1,$1,$0,ZZZ\n",
			want: "record 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
