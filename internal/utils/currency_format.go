package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of minor units digits in one major unit.
const AmountPrecision = 2

// FormatAmount renders an amount held in minor units as a major-unit string
// for log lines. Example: 1500 returns "15.00". The API carries raw integers.
func FormatAmount(amount int64) string {
	return decimal.New(amount, -AmountPrecision).StringFixed(AmountPrecision)
}
