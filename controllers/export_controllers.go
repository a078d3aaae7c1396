package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

var exportHeaders = []string{
	"Completion Date", "Table No", "Item", "Portion", "Quantity", "Price", "Amount",
	"Subtotal", "Discount %", "Discount Amount", "Service Charge", "Taxable Amount",
	"GST Rate", "GST Type", "GST Amount", "Grand Total", "Message",
}

// ExportOrders -> unduh order past sebagai xlsx. Angka diambil dari receipt
// yang dibekukan saat settlement, bukan dihitung ulang. Satu settlement =
// satu blok baris (receipt-nya sama untuk semua order dalam grup, jadi cukup
// ditulis sekali).
func (ec *ExportController) ExportOrders(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	query := ec.DB.Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusPast)
	query, err := applyDateFilter(query, c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var orders []models.Order
	if err := query.Order("updated_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("load past orders", err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Past Orders"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, group := range groupBySettlement(orders) {
		rd := group[0].Receipt
		if rd == nil {
			utils.ErrorLogger.Printf("past order %d has no receipt, skipping from export", group[0].ID)
			continue
		}

		for _, line := range rd.Items {
			values := []interface{}{
				group[0].UpdatedAt.Format("2006-01-02 15:04:05"),
				group[0].TableNo,
				line.Name,
				line.Portion,
				line.Quantity,
				line.Price,
				line.Amount,
				rd.OriginalSubtotal,
				rd.DiscountPercent,
				rd.DiscountAmount,
				rd.ServiceCharge,
				rd.TaxableAmount,
				rd.GSTRate,
				rd.GSTType,
				rd.GSTAmount,
				rd.Total,
				rd.Message,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
		row++ // baris kosong antar settlement
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=past_orders.xlsx")
	if err := f.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("error writing export: %v", err)
	}
	c.Status(http.StatusOK)
}

// applyDateFilter menerjemahkan type=year|month|custom ke kondisi created_at.
func applyDateFilter(query *gorm.DB, c *gin.Context) (*gorm.DB, error) {
	switch c.Query("type") {
	case "year":
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			return nil, apperrors.Validation("year", "year is required")
		}
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
		return query.Where("created_at BETWEEN ? AND ?", start, start.AddDate(1, 0, 0)), nil

	case "month":
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			return nil, apperrors.Validation("year", "year is required")
		}
		monthsParam := c.Query("months")
		if monthsParam == "" {
			return nil, apperrors.Validation("months", "months is required")
		}
		var conds []string
		var args []interface{}
		for _, m := range strings.Split(monthsParam, ",") {
			month, err := strconv.Atoi(m)
			if err != nil || month < 1 || month > 12 {
				return nil, apperrors.Validation("months", fmt.Sprintf("invalid month %q", m))
			}
			start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
			conds = append(conds, "(created_at BETWEEN ? AND ?)")
			args = append(args, start, start.AddDate(0, 1, 0))
		}
		return query.Where(strings.Join(conds, " OR "), args...), nil

	case "custom":
		from, err := time.ParseInLocation("2006-01-02", c.Query("from"), time.Local)
		if err != nil {
			return nil, apperrors.Validation("from", "invalid date format, expected YYYY-MM-DD")
		}
		to, err := time.ParseInLocation("2006-01-02", c.Query("to"), time.Local)
		if err != nil {
			return nil, apperrors.Validation("to", "invalid date format, expected YYYY-MM-DD")
		}
		return query.Where("created_at BETWEEN ? AND ?", from, to.AddDate(0, 0, 1)), nil
	}
	return nil, apperrors.Validation("type", "type must be 'year', 'month', or 'custom'")
}

// groupBySettlement mengelompokkan order past per batch settlement, urutan
// kemunculan dipertahankan. Order lama tanpa settlement id jadi grup sendiri.
func groupBySettlement(orders []models.Order) [][]models.Order {
	var groups [][]models.Order
	index := map[string]int{}

	for _, o := range orders {
		if o.SettlementID == nil {
			groups = append(groups, []models.Order{o})
			continue
		}
		if i, ok := index[*o.SettlementID]; ok {
			groups[i] = append(groups[i], o)
			continue
		}
		index[*o.SettlementID] = len(groups)
		groups = append(groups, []models.Order{o})
	}
	return groups
}
