package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyINR memformat angka ke format Rupee India dengan grouping
// lakh/crore: 1234567.5 -> "₹12,34,567.50". Dipakai front end cetak struk
// lewat response; angka yang dikirim tetap numerik.
func FormatCurrencyINR(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	// Tiga digit terakhir dulu, sisanya per dua digit.
	var groups []string
	if len(integerPart) > 3 {
		groups = append(groups, integerPart[len(integerPart)-3:])
		rest := integerPart[:len(integerPart)-3]
		for len(rest) > 2 {
			groups = append([]string{rest[len(rest)-2:]}, groups...)
			rest = rest[:len(rest)-2]
		}
		if len(rest) > 0 {
			groups = append([]string{rest}, groups...)
		}
	} else {
		groups = []string{integerPart}
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%s", sign, strings.Join(groups, ","), decimalPart)
}
