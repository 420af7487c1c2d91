package model

import "github.com/shopspring/decimal"

// MaxAmount is the largest sale amount accepted.
var MaxAmount = decimal.RequireFromString("99999999.99")

// RoundMoney rounds d to the cent, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Cents converts a monetary value to integer cents.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer cents to a monetary value with two decimal places.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
