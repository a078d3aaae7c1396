package models

// ReceiptLine adalah satu baris bill hasil merge. Amount = Price * Quantity,
// dibulatkan 2 desimal saat snapshot dibuat.
type ReceiptLine struct {
	Name     string  `json:"name"`
	IsVeg    bool    `json:"is_veg"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Portion  string  `json:"portion"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ReceiptDetails adalah snapshot bill yang dibekukan saat settlement.
// Setelah dibuat tidak pernah dihitung ulang: reprint dan export wajib membaca
// struct ini apa adanya, bukan menurunkan ulang dari harga menu sekarang.
type ReceiptDetails struct {
	Items            []ReceiptLine `json:"items"`
	OriginalSubtotal float64       `json:"original_subtotal"`
	DiscountPercent  float64       `json:"discount_percent"`
	DiscountAmount   float64       `json:"discount_amount"`
	ServiceCharge    float64       `json:"service_charge"`
	GSTRate          float64       `json:"gst_rate"`
	GSTType          string        `json:"gst_type"`
	GSTAmount        float64       `json:"gst_amount"`
	TaxableAmount    float64       `json:"taxable_amount"`
	Total            float64       `json:"total"`
	Message          string        `json:"message,omitempty"`
}
