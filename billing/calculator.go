package billing

import (
	"math"

	"github.com/yeremiapane/table-order-app/apperrors"
)

const (
	GSTExclusive = "exclusive"
	GSTInclusive = "inclusive"
)

// CalcInput adalah parameter settlement. DiscountPercent 0-100,
// ServiceCharge nominal flat (bukan persen), GSTRate persen >= 0.
type CalcInput struct {
	OriginalSubtotal float64
	DiscountPercent  float64
	ServiceCharge    float64
	GSTRate          float64
	GSTType          string
}

// CalcResult membawa angka hasil perhitungan dengan presisi penuh.
// Pembulatan 2 desimal baru terjadi di snapshot/response, bukan di sini,
// supaya preview dan settlement menghasilkan angka bulat yang identik.
type CalcResult struct {
	DiscountAmount float64
	TaxableAmount  float64
	GSTAmount      float64
	GrandTotal     float64
}

// Calculate menjalankan aritmetika diskon/GST/service charge.
//
// exclusive: diskon dipotong dari subtotal, GST ditambahkan di atas taxable.
// inclusive: subtotal dianggap sudah mengandung GST; dinormalkan dulu ke
// baseSubtotal = subtotal / (1 + rate), baru diskon dan GST dihitung dari situ.
// Pembagi selalu >= 1 untuk rate >= 0, jadi tidak ada kasus bagi nol.
//
// Fungsi ini pure: input sama selalu menghasilkan output sama.
func Calculate(in CalcInput) (CalcResult, error) {
	if err := validate(in); err != nil {
		return CalcResult{}, err
	}

	rate := in.GSTRate / 100
	var out CalcResult

	switch in.GSTType {
	case GSTInclusive:
		baseSubtotal := in.OriginalSubtotal / (1 + rate)
		out.DiscountAmount = baseSubtotal * in.DiscountPercent / 100
		out.TaxableAmount = baseSubtotal - out.DiscountAmount
		out.GSTAmount = out.TaxableAmount * rate
	default: // exclusive
		out.DiscountAmount = in.OriginalSubtotal * in.DiscountPercent / 100
		out.TaxableAmount = in.OriginalSubtotal - out.DiscountAmount
		out.GSTAmount = out.TaxableAmount * rate
	}

	out.GrandTotal = out.TaxableAmount + out.GSTAmount + in.ServiceCharge
	return out, nil
}

func validate(in CalcInput) error {
	verr := &apperrors.ValidationError{}
	if in.OriginalSubtotal < 0 {
		verr.Add("originalSubtotal", "must be >= 0")
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		verr.Add("discountPercent", "must be between 0 and 100")
	}
	if in.ServiceCharge < 0 {
		verr.Add("serviceCharge", "must be >= 0")
	}
	if in.GSTRate < 0 || math.IsNaN(in.GSTRate) || math.IsInf(in.GSTRate, 0) {
		verr.Add("gstRate", "must be a finite percentage >= 0")
	}
	if in.GSTType != GSTInclusive && in.GSTType != GSTExclusive {
		verr.Add("gstType", "must be 'inclusive' or 'exclusive'")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Round2 membulatkan ke 2 desimal, half up (80.875 -> 80.88).
// Satu-satunya mode pembulatan di seluruh sistem.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
