package domain

import "fmt"

// All money is integer minor units. Percentages are expressed in basis
// points (1% = 100 bp) so fee and commission math never touches floats.

const BasisPointsTotal = 10000

// Share returns amount * bp / 10000 rounded down; the remainder stays with
// the platform side of the split.
func Share(amount int64, bp int64) int64 {
	return amount * bp / BasisPointsTotal
}

// FormatMinor renders minor units as a decimal string for logs.
func FormatMinor(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, currency)
}
