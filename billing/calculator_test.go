package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/table-order-app/apperrors"
)

func TestCalculateExclusive(t *testing.T) {
	// grandTotal = subtotal*(1-d/100)*(1+g/100) + serviceCharge
	for _, g := range []float64{0, 5, 12, 18} {
		for _, d := range []float64{0, 10, 50} {
			in := CalcInput{
				OriginalSubtotal: 200,
				DiscountPercent:  d,
				ServiceCharge:    15,
				GSTRate:          g,
				GSTType:          GSTExclusive,
			}
			out, err := Calculate(in)
			assert.NoError(t, err)

			expected := 200*(1-d/100)*(1+g/100) + 15
			assert.InDelta(t, expected, out.GrandTotal, 0.01, "g=%v d=%v", g, d)
			assert.InDelta(t, 200*d/100, out.DiscountAmount, 0.01)
			assert.InDelta(t, 200*(1-d/100), out.TaxableAmount, 0.01)
		}
	}
}

func TestCalculateInclusive(t *testing.T) {
	// Subtotal sudah mengandung GST: setelah dinormalkan dan dipajaki lagi,
	// grandTotal = subtotal*(1-d/100) + serviceCharge.
	for _, g := range []float64{0, 5, 12, 18} {
		for _, d := range []float64{0, 10, 50} {
			in := CalcInput{
				OriginalSubtotal: 200,
				DiscountPercent:  d,
				ServiceCharge:    15,
				GSTRate:          g,
				GSTType:          GSTInclusive,
			}
			out, err := Calculate(in)
			assert.NoError(t, err)

			expected := 200*(1-d/100) + 15
			assert.InDelta(t, expected, out.GrandTotal, 0.01, "g=%v d=%v", g, d)
		}
	}
}

func TestCalculateSampleBill(t *testing.T) {
	// Meja dengan subtotal 75: diskon 10%, service 10, GST 5% exclusive.
	in := CalcInput{
		OriginalSubtotal: 75,
		DiscountPercent:  10,
		ServiceCharge:    10,
		GSTRate:          5,
		GSTType:          GSTExclusive,
	}
	out, err := Calculate(in)
	assert.NoError(t, err)

	assert.InDelta(t, 7.5, out.DiscountAmount, 1e-9)
	assert.InDelta(t, 67.5, out.TaxableAmount, 1e-9)
	assert.InDelta(t, 3.375, out.GSTAmount, 1e-9)
	assert.InDelta(t, 80.875, out.GrandTotal, 1e-9)
	assert.Equal(t, 80.88, Round2(out.GrandTotal))
}

func TestCalculateIdempotent(t *testing.T) {
	in := CalcInput{
		OriginalSubtotal: 123.45,
		DiscountPercent:  7,
		ServiceCharge:    3.5,
		GSTRate:          12,
		GSTType:          GSTInclusive,
	}
	first, err := Calculate(in)
	assert.NoError(t, err)
	second, err := Calculate(in)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, Round2(first.GrandTotal), Round2(second.GrandTotal))
}

func TestCalculateValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    CalcInput
		field string
	}{
		{"negative subtotal", CalcInput{OriginalSubtotal: -1, GSTType: GSTExclusive}, "originalSubtotal"},
		{"discount over 100", CalcInput{DiscountPercent: 101, GSTType: GSTExclusive}, "discountPercent"},
		{"negative service charge", CalcInput{ServiceCharge: -5, GSTType: GSTExclusive}, "serviceCharge"},
		{"negative gst rate", CalcInput{GSTRate: -5, GSTType: GSTExclusive}, "gstRate"},
		{"unknown gst type", CalcInput{GSTType: "compound"}, "gstType"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.in)
			assert.Error(t, err)
			verr, ok := err.(*apperrors.ValidationError)
			assert.True(t, ok)
			assert.Equal(t, tc.field, verr.Errors[0].Field)
		})
	}
}

func TestRound2(t *testing.T) {
	// Half up, konsisten di semua titik pembulatan.
	assert.Equal(t, 80.88, Round2(80.875))
	assert.Equal(t, 80.87, Round2(80.874))
	assert.Equal(t, 3.38, Round2(3.375))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(99.999))
}
