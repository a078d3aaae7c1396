package billing

import (
	"github.com/yeremiapane/table-order-app/models"
)

// BuildReceipt membekukan hasil konsolidasi + kalkulasi menjadi satu
// ReceiptDetails. Dipanggil tepat satu kali per settlement; hasilnya dipasang
// identik ke setiap order dalam grup dan dikembalikan ke caller untuk dicetak —
// dua konsumen itu melihat snapshot yang sama, bukan dua hitungan terpisah.
//
// Semua angka uang dibulatkan 2 desimal di sini (half up); reprint dan export
// tinggal membaca ulang tanpa menghitung apa pun.
func BuildReceipt(items []models.ReceiptLine, subtotal float64, in CalcInput, result CalcResult, message string) models.ReceiptDetails {
	return models.ReceiptDetails{
		Items:            items,
		OriginalSubtotal: Round2(subtotal),
		DiscountPercent:  in.DiscountPercent,
		DiscountAmount:   Round2(result.DiscountAmount),
		ServiceCharge:    Round2(in.ServiceCharge),
		GSTRate:          in.GSTRate,
		GSTType:          in.GSTType,
		GSTAmount:        Round2(result.GSTAmount),
		TaxableAmount:    Round2(result.TaxableAmount),
		Total:            Round2(result.GrandTotal),
		Message:          message,
	}
}
