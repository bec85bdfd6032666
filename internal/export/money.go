package export

import (
	"strconv"

	"billcraft-cli/internal/model"
)

// Money renders an amount with the invoice's currency symbol, two decimals,
// sign ahead of the symbol ("-$1.00").
func Money(c model.Currency, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + c.Symbol() + strconv.FormatFloat(v, 'f', 2, 64)
}

// moneyASCII is Money with the currency code instead of the symbol. The PDF
// core fonts are cp1252; ₹ (and friends) would come out as garbage there.
func moneyASCII(c model.Currency, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + string(c) + " " + strconv.FormatFloat(v, 'f', 2, 64)
}
