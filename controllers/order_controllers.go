package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/billing"
	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

// Toleransi pembandingan harga/total terhadap nilai menu dan sum item.
const priceEpsilon = 0.01

type OrderController struct {
	DB     *gorm.DB
	Events events.Emitter
}

func NewOrderController(db *gorm.DB, emitter events.Emitter) *OrderController {
	return &OrderController{DB: db, Events: emitter}
}

type orderItemReq struct {
	MenuID   uint    `json:"menu_id"`
	Name     string  `json:"name"`
	IsVeg    bool    `json:"is_veg"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Portion  string  `json:"portion"`
	Notes    string  `json:"notes"`
}

type createOrderReq struct {
	RestaurantID uint           `json:"restaurant_id"`
	TableNo      *int           `json:"table_no"`
	Items        []orderItemReq `json:"items"`
	Total        float64        `json:"total"`
}

// CreateOrder -> diner submit cart, order lahir dengan status live.
// Endpoint publik; identitas restoran dari body/query, bukan token.
// Validasi harga per item adalah trust boundary: harga yang dikirim client
// wajib cocok dengan harga menu saat ini (toleransi 0.01), lalu di-snapshot.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", "invalid JSON payload"))
		return
	}

	restaurantID := req.RestaurantID
	if restaurantID == 0 {
		if v, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32); err == nil {
			restaurantID = uint(v)
		}
	}
	if restaurantID == 0 {
		utils.RespondError(c, apperrors.Validation("restaurant_id", "restaurant_id is required"))
		return
	}

	if req.TableNo == nil || *req.TableNo < 0 {
		utils.RespondError(c, apperrors.Validation("table_no", "table_no must be an integer >= 0"))
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(c, apperrors.Validation("items", "items must be a non-empty array"))
		return
	}

	var created models.Order

	// Cek gate dan pembuatan baris dalam satu transaksi, supaya order tidak
	// lolos sesaat setelah gate ditutup (lihat toggle di bawah).
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var restaurant models.User
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("restaurant_id", "restaurant not found")
			}
			return apperrors.Storage("load restaurant", err)
		}
		if restaurant.IsSubmitDisabled {
			return apperrors.ErrSubmitDisabled
		}

		verr := &apperrors.ValidationError{}
		items := make([]models.OrderItem, 0, len(req.Items))
		var computedTotal float64

		for i, item := range req.Items {
			field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

			if item.MenuID == 0 {
				verr.Add(field("menu_id"), "menu_id is a required field")
				continue
			}
			if item.Quantity < 1 {
				verr.Add(field("quantity"), "quantity must be >= 1")
				continue
			}
			if item.Portion != models.PortionFull && item.Portion != models.PortionHalf {
				verr.Add(field("portion"), "portion must be 'half' or 'full'")
				continue
			}

			var menu models.Menu
			if err := tx.Where("id = ? AND restaurant_id = ?", item.MenuID, restaurantID).First(&menu).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					verr.Add(field("menu_id"), fmt.Sprintf("menu item with ID %d not found", item.MenuID))
					continue
				}
				return apperrors.Storage("load menu item", err)
			}
			if !menu.IsEnabled {
				verr.Add(field("menu_id"), fmt.Sprintf("%s is currently unavailable", menu.Name))
				continue
			}

			expected, ok := menu.PriceFor(item.Portion)
			if !ok {
				verr.Add(field("portion"), fmt.Sprintf("%s has no half portion", menu.Name))
				continue
			}
			if math.Abs(item.Price-expected) > priceEpsilon {
				verr.Add(field("price"), fmt.Sprintf("price for %s (%s) does not match menu price (expected %.2f)", menu.Name, item.Portion, expected))
				continue
			}

			// Snapshot dari menu, bukan dari input client.
			items = append(items, models.OrderItem{
				MenuID:   menu.ID,
				Name:     menu.Name,
				IsVeg:    menu.IsVeg,
				Price:    expected,
				Quantity: item.Quantity,
				Portion:  item.Portion,
				Category: menu.Category,
				Notes:    item.Notes,
				Position: i,
			})
			computedTotal += expected * float64(item.Quantity)
		}

		if verr.HasErrors() {
			return verr
		}
		if math.Abs(req.Total-computedTotal) > priceEpsilon {
			return apperrors.Validation("total",
				fmt.Sprintf("total does not match calculated item total (expected %.2f)", computedTotal))
		}

		order := models.Order{
			RestaurantID: restaurantID,
			TableNo:      *req.TableNo,
			Total:        billing.Round2(computedTotal),
			Status:       models.StatusLive,
			OrderItems:   items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Storage("create order", err)
		}
		created = order
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	oc.Events.Emit(events.EventNewOrder, restaurantID, created)
	utils.RespondJSON(c, http.StatusCreated, "Order created", created)
}

// listByStatus -> list order restoran login untuk satu status,
// item di-preload urut posisi submit.
func (oc *OrderController) listByStatus(c *gin.Context, status string) {
	restaurantID := middlewares.RestaurantID(c)

	var orders []models.Order
	err := oc.DB.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, apperrors.Storage("list orders", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of "+status+" orders", orders)
}

func (oc *OrderController) GetLiveOrders(c *gin.Context)      { oc.listByStatus(c, models.StatusLive) }
func (oc *OrderController) GetRecurringOrders(c *gin.Context) { oc.listByStatus(c, models.StatusRecurring) }
func (oc *OrderController) GetPastOrders(c *gin.Context)      { oc.listByStatus(c, models.StatusPast) }

// findOwnedOrder memuat order dan memeriksa kepemilikan. Order milik restoran
// lain dijawab Unauthorized tanpa detail entity.
func (oc *OrderController) findOwnedOrder(c *gin.Context, preloadItems bool) (*models.Order, error) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		return nil, apperrors.Validation("order_id", "invalid order id")
	}

	q := oc.DB
	if preloadItems {
		q = q.Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") })
	}

	var order models.Order
	if err := q.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("load order", err)
	}
	if order.RestaurantID != middlewares.RestaurantID(c) {
		return nil, apperrors.ErrUnauthorized
	}
	return &order, nil
}

// AdvanceToRecurring -> staff acknowledge: live -> recurring.
// TableNo tidak disentuh; itu kunci grouping selama fase recurring.
func (oc *OrderController) AdvanceToRecurring(c *gin.Context) {
	order, err := oc.findOwnedOrder(c, true)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if order.Status != models.StatusLive || !order.CanTransition(models.StatusRecurring) {
		utils.RespondError(c, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, models.StatusRecurring))
		return
	}

	order.Status = models.StatusRecurring
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(order).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("advance order", err))
		return
	}

	oc.Events.Emit(events.EventOrderUpdated, order.RestaurantID, order)
	utils.RespondJSON(c, http.StatusOK, "Order moved to recurring", order)
}

type settleReq struct {
	DiscountPercent float64 `json:"discount_percent"`
	ServiceCharge   float64 `json:"service_charge"`
	GSTRate         float64 `json:"gst_rate"`
	GSTType         string  `json:"gst_type"`
	Message         string  `json:"message"`
}

// CompleteOrders -> settlement satu meja: konsolidasi semua order recurring,
// hitung bill, bekukan receipt, dan flip semua order ke past dalam satu
// transaksi. Gagal di tengah = tidak ada yang berubah, aman diulang dari awal
// (konsolidasi dihitung ulang dari baris recurring yang masih utuh).
func (oc *OrderController) CompleteOrders(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	tableNo, err := strconv.Atoi(c.Param("table_no"))
	if err != nil || tableNo < 0 {
		utils.RespondError(c, apperrors.Validation("table_no", "invalid table number"))
		return
	}

	var req settleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", "invalid JSON payload"))
		return
	}

	var (
		receipt models.ReceiptDetails
		settled []models.Order
	)

	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		err := tx.
			Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
			Where("restaurant_id = ? AND table_no = ? AND status = ?", restaurantID, tableNo, models.StatusRecurring).
			Order("created_at ASC").
			Find(&orders).Error
		if err != nil {
			return apperrors.Storage("load recurring orders", err)
		}

		grouped, subtotal, err := billing.Consolidate(orders)
		if err != nil {
			return err
		}

		calcIn := billing.CalcInput{
			OriginalSubtotal: subtotal,
			DiscountPercent:  req.DiscountPercent,
			ServiceCharge:    req.ServiceCharge,
			GSTRate:          req.GSTRate,
			GSTType:          req.GSTType,
		}
		result, err := billing.Calculate(calcIn)
		if err != nil {
			return err
		}

		// Satu snapshot untuk semua order dalam grup; print dan reprint
		// membaca object yang sama persis.
		receipt = billing.BuildReceipt(grouped, subtotal, calcIn, result, req.Message)
		settlementID := uuid.NewString()
		now := time.Now()

		for i := range orders {
			orders[i].Status = models.StatusPast
			orders[i].Receipt = &receipt
			orders[i].SettlementID = &settlementID
			orders[i].UpdatedAt = now
			if err := tx.Save(&orders[i]).Error; err != nil {
				return apperrors.Storage("settle order", err)
			}
		}
		settled = orders
		return nil
	})
	if txErr != nil {
		utils.RespondError(c, txErr)
		return
	}

	oc.Events.Emit(events.EventOrdersCompleted, restaurantID, gin.H{
		"restaurant_id": restaurantID,
		"table_no":      tableNo,
		"orders":        settled,
	})
	utils.RespondJSON(c, http.StatusOK, "Orders completed and receipt saved", receipt)
}

// ReprintReceipt -> kembalikan snapshot tersimpan apa adanya. Tidak pernah
// menghitung ulang: kalau snapshot tidak ada, jawab NotFound, jangan
// mengarang bill best-effort.
func (oc *OrderController) ReprintReceipt(c *gin.Context) {
	order, err := oc.findOwnedOrder(c, false)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if order.Status != models.StatusPast || order.Receipt == nil {
		utils.RespondError(c, fmt.Errorf("%w: no receipt for this order", apperrors.ErrNotFound))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt", gin.H{
		"receipt":         order.Receipt,
		"table_no":        order.TableNo,
		"completion_date": order.UpdatedAt,
		"total_formatted": utils.FormatCurrencyINR(order.Receipt.Total),
	})
}

// MoveToRecurring -> koreksi: past -> recurring. Receipt lama menyatukan
// beberapa order; membatalkan satu saja akan meninggalkan snapshot saudara
// yang totalnya sudah tidak konsisten. Karena itu pembatalan berlaku untuk
// seluruh grup settlement: semua order dengan SettlementID yang sama ikut
// kembali ke recurring dan receipt-nya dicabut.
func (oc *OrderController) MoveToRecurring(c *gin.Context) {
	order, err := oc.findOwnedOrder(c, true)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if order.Status != models.StatusPast || !order.CanTransition(models.StatusRecurring) {
		utils.RespondError(c, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, order.Status, models.StatusRecurring))
		return
	}

	var reverted []models.Order
	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		var group []models.Order
		if order.SettlementID != nil {
			err := tx.
				Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
				Where("restaurant_id = ? AND settlement_id = ?", order.RestaurantID, *order.SettlementID).
				Find(&group).Error
			if err != nil {
				return apperrors.Storage("load settlement group", err)
			}
		} else {
			group = []models.Order{*order}
		}

		now := time.Now()
		for i := range group {
			group[i].Status = models.StatusRecurring
			group[i].Receipt = nil
			group[i].SettlementID = nil
			group[i].UpdatedAt = now
			if err := tx.Save(&group[i]).Error; err != nil {
				return apperrors.Storage("revert order", err)
			}
		}
		reverted = group
		return nil
	})
	if txErr != nil {
		utils.RespondError(c, txErr)
		return
	}

	for i := range reverted {
		oc.Events.Emit(events.EventOrderUpdated, reverted[i].RestaurantID, reverted[i])
	}
	utils.RespondJSON(c, http.StatusOK, "Orders moved back to recurring", reverted)
}

// DeleteOrder -> hard delete, sah dari status mana pun.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	order, err := oc.findOwnedOrder(c, false)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	txErr := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return apperrors.Storage("delete order items", err)
		}
		if err := tx.Delete(order).Error; err != nil {
			return apperrors.Storage("delete order", err)
		}
		return nil
	})
	if txErr != nil {
		utils.RespondError(c, txErr)
		return
	}

	oc.Events.Emit(events.EventOrderDeleted, order.RestaurantID, gin.H{
		"id":            order.ID,
		"restaurant_id": order.RestaurantID,
	})
	utils.RespondJSON(c, http.StatusOK, "Order deleted successfully", nil)
}

// GetOrderStats -> hitungan order hari ini dan bulan berjalan untuk dashboard.
func (oc *OrderController) GetOrderStats(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var daily, monthly int64
	if err := oc.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, today).
		Count(&daily).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("count daily orders", err))
		return
	}
	if err := oc.DB.Model(&models.Order{}).
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, monthStart).
		Count(&monthly).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("count monthly orders", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats", gin.H{
		"daily_orders":   daily,
		"monthly_orders": monthly,
	})
}

// ToggleSubmitGate -> flip gate dalam satu statement (NOT kolom), bukan
// read-modify-write, supaya dua staff yang menekan bersamaan tidak saling
// menimpa nilai.
func (oc *OrderController) ToggleSubmitGate(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	res := oc.DB.Model(&models.User{}).
		Where("id = ?", restaurantID).
		Update("is_submit_disabled", gorm.Expr("NOT is_submit_disabled"))
	if res.Error != nil {
		utils.RespondError(c, apperrors.Storage("toggle submit gate", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, apperrors.ErrNotFound)
		return
	}

	var restaurant models.User
	if err := oc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("load restaurant", err))
		return
	}

	oc.Events.Emit(events.EventSubmitGateUpdated, restaurantID, gin.H{
		"restaurant_id":      restaurantID,
		"is_submit_disabled": restaurant.IsSubmitDisabled,
	})
	utils.RespondJSON(c, http.StatusOK, "Submit gate updated", gin.H{
		"is_submit_disabled": restaurant.IsSubmitDisabled,
	})
}

// GetSubmitGateStatus -> endpoint publik untuk client diner sebelum submit.
func (oc *OrderController) GetSubmitGateStatus(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)
	if err != nil || restaurantID == 0 {
		utils.RespondError(c, apperrors.Validation("restaurant_id", "restaurant_id is required"))
		return
	}

	var restaurant models.User
	if err := oc.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, apperrors.ErrNotFound)
			return
		}
		utils.RespondError(c, apperrors.Storage("load restaurant", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Submit gate status", gin.H{
		"is_submit_disabled": restaurant.IsSubmitDisabled,
	})
}
