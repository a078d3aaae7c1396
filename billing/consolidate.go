package billing

import (
	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/models"
)

// Consolidate meratakan seluruh item dari order recurring satu meja menjadi satu
// daftar bill. Dua baris dianggap sama hanya kalau nama, harga satuan, dan porsi
// ketiganya identik; kalau sama, quantity dijumlahkan. Item yang sama tapi beda
// porsi (atau beda harga karena harga menu sempat berubah) tetap jadi baris
// terpisah. Urutan hasil mengikuti kemunculan pertama, tidak di-sort.
//
// Subtotal dihitung dari baris hasil merge; secara distributif nilainya sama
// dengan menjumlahkan baris mentah.
func Consolidate(orders []models.Order) ([]models.ReceiptLine, float64, error) {
	if len(orders) == 0 {
		return nil, 0, apperrors.ErrNoRecurringOrders
	}

	var grouped []models.ReceiptLine
	index := map[lineKey]int{}

	for _, order := range orders {
		for _, item := range order.OrderItems {
			key := lineKey{name: item.Name, price: item.Price, portion: item.Portion}
			if i, ok := index[key]; ok {
				grouped[i].Quantity += item.Quantity
				continue
			}
			index[key] = len(grouped)
			grouped = append(grouped, models.ReceiptLine{
				Name:     item.Name,
				IsVeg:    item.IsVeg,
				Price:    item.Price,
				Quantity: item.Quantity,
				Portion:  item.Portion,
				Category: item.Category,
			})
		}
	}

	var subtotal float64
	for i := range grouped {
		grouped[i].Amount = Round2(grouped[i].Price * float64(grouped[i].Quantity))
		subtotal += grouped[i].Price * float64(grouped[i].Quantity)
	}

	return grouped, subtotal, nil
}

type lineKey struct {
	name    string
	price   float64
	portion string
}
