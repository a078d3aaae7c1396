package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/models"
)

func orderWith(items ...models.OrderItem) models.Order {
	return models.Order{OrderItems: items}
}

func tea(qty int, price float64) models.OrderItem {
	return models.OrderItem{Name: "Tea", Price: price, Quantity: qty, Portion: models.PortionFull, Category: "Beverages"}
}

func TestConsolidateMergesIdenticalLines(t *testing.T) {
	orders := []models.Order{
		orderWith(tea(2, 20)),
		orderWith(tea(1, 20)),
	}

	grouped, subtotal, err := Consolidate(orders)
	assert.NoError(t, err)
	assert.Len(t, grouped, 1)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, 60.0, grouped[0].Amount)
	assert.InDelta(t, 60.0, subtotal, 1e-9)
}

func TestConsolidateKeepsDifferentPriceDistinct(t *testing.T) {
	// Nama sama, harga beda (harga menu sempat diganti) -> dua baris.
	orders := []models.Order{
		orderWith(tea(2, 20)),
		orderWith(tea(1, 20)),
		orderWith(tea(1, 25)),
	}

	grouped, subtotal, err := Consolidate(orders)
	assert.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, 20.0, grouped[0].Price)
	assert.Equal(t, 1, grouped[1].Quantity)
	assert.Equal(t, 25.0, grouped[1].Price)
	assert.InDelta(t, 85.0, subtotal, 1e-9)
}

func TestConsolidateKeepsPortionsDistinct(t *testing.T) {
	half := models.OrderItem{Name: "Paneer Tikka", Price: 90, Quantity: 1, Portion: models.PortionHalf, Category: "Starters"}
	full := models.OrderItem{Name: "Paneer Tikka", Price: 160, Quantity: 1, Portion: models.PortionFull, Category: "Starters"}

	grouped, _, err := Consolidate([]models.Order{orderWith(half, full, half)})
	assert.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Equal(t, models.PortionHalf, grouped[0].Portion)
	assert.Equal(t, 2, grouped[0].Quantity)
	assert.Equal(t, models.PortionFull, grouped[1].Portion)
}

func TestConsolidateStableFirstOccurrenceOrder(t *testing.T) {
	samosa := models.OrderItem{Name: "Samosa", Price: 15, Quantity: 1, Portion: models.PortionFull, Category: "Snacks"}
	orders := []models.Order{
		orderWith(tea(1, 20), samosa),
		orderWith(samosa, tea(2, 20)),
	}

	grouped, _, err := Consolidate(orders)
	assert.NoError(t, err)
	assert.Len(t, grouped, 2)
	// Urutan mengikuti kemunculan pertama, bukan sort.
	assert.Equal(t, "Tea", grouped[0].Name)
	assert.Equal(t, "Samosa", grouped[1].Name)
	assert.Equal(t, 3, grouped[0].Quantity)
	assert.Equal(t, 2, grouped[1].Quantity)
}

func TestConsolidateSubtotalMatchesRawSum(t *testing.T) {
	// Distributif: sum baris merge == sum baris mentah.
	orders := []models.Order{
		orderWith(tea(2, 20), models.OrderItem{Name: "Samosa", Price: 15, Quantity: 3, Portion: models.PortionFull}),
		orderWith(tea(5, 20)),
	}

	var raw float64
	for _, o := range orders {
		for _, it := range o.OrderItems {
			raw += it.Price * float64(it.Quantity)
		}
	}

	_, subtotal, err := Consolidate(orders)
	assert.NoError(t, err)
	assert.InDelta(t, raw, subtotal, 0.01)
}

func TestConsolidateEmptyInput(t *testing.T) {
	_, _, err := Consolidate(nil)
	assert.ErrorIs(t, err, apperrors.ErrNoRecurringOrders)

	_, _, err = Consolidate([]models.Order{})
	assert.ErrorIs(t, err, apperrors.ErrNoRecurringOrders)
}

func TestBuildReceiptFreezesRoundedFigures(t *testing.T) {
	orders := []models.Order{
		orderWith(tea(3, 20), models.OrderItem{Name: "Samosa", Price: 15, Quantity: 1, Portion: models.PortionFull, Category: "Snacks"}),
	}
	grouped, subtotal, err := Consolidate(orders)
	assert.NoError(t, err)

	in := CalcInput{
		OriginalSubtotal: subtotal,
		DiscountPercent:  10,
		ServiceCharge:    10,
		GSTRate:          5,
		GSTType:          GSTExclusive,
	}
	result, err := Calculate(in)
	assert.NoError(t, err)

	receipt := BuildReceipt(grouped, subtotal, in, result, "thank you")

	assert.Equal(t, 75.0, receipt.OriginalSubtotal)
	assert.Equal(t, 7.5, receipt.DiscountAmount)
	assert.Equal(t, 67.5, receipt.TaxableAmount)
	assert.Equal(t, 3.38, receipt.GSTAmount)
	assert.Equal(t, 80.88, receipt.Total)
	assert.Equal(t, GSTExclusive, receipt.GSTType)
	assert.Equal(t, "thank you", receipt.Message)
	assert.Len(t, receipt.Items, 2)

	// Snapshot identik kalau dibangun dua kali dari input yang sama.
	again := BuildReceipt(grouped, subtotal, in, result, "thank you")
	assert.Equal(t, receipt, again)
}
