package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyINR(t *testing.T) {
	// Grouping lakh/crore: 3 digit terakhir, lalu per 2 digit.
	assert.Equal(t, "₹80.88", FormatCurrencyINR(80.88))
	assert.Equal(t, "₹567.50", FormatCurrencyINR(567.5))
	assert.Equal(t, "₹4,567.50", FormatCurrencyINR(4567.5))
	assert.Equal(t, "₹34,567.50", FormatCurrencyINR(34567.5))
	assert.Equal(t, "₹12,34,567.50", FormatCurrencyINR(1234567.5))
	assert.Equal(t, "₹1,23,45,678.00", FormatCurrencyINR(12345678))
	assert.Equal(t, "₹0.00", FormatCurrencyINR(0))
	assert.Equal(t, "-₹1,250.75", FormatCurrencyINR(-1250.75))
}
