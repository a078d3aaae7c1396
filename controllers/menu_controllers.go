package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuReq struct {
	Category    string   `json:"category" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	IsVeg       bool     `json:"is_veg"`
	Price       float64  `json:"price"`
	HasHalf     bool     `json:"has_half"`
	HalfPrice   *float64 `json:"half_price"`
}

// validasi aturan harga: price > 0; halfPrice wajib dan > 0 kalau hasHalf,
// dan tidak boleh ada kalau tidak.
func (r *menuReq) validate() error {
	verr := &apperrors.ValidationError{}
	if r.Price <= 0 {
		verr.Add("price", "price must be > 0")
	}
	if r.HasHalf {
		if r.HalfPrice == nil || *r.HalfPrice <= 0 {
			verr.Add("half_price", "half_price is required and must be > 0 when has_half is true")
		}
	} else if r.HalfPrice != nil {
		verr.Add("half_price", "half_price must be absent when has_half is false")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// GetMenus -> semua menu restoran login, termasuk yang dinonaktifkan.
func (mc *MenuController) GetMenus(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	var menus []models.Menu
	if err := mc.DB.Where("restaurant_id = ?", restaurantID).Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("list menus", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetPublicMenu -> menu untuk diner (scan QR): hanya yang enabled.
func (mc *MenuController) GetPublicMenu(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)
	if err != nil || restaurantID == 0 {
		utils.RespondError(c, apperrors.Validation("restaurant_id", "restaurant_id is required"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Where("restaurant_id = ? AND is_enabled = ?", restaurantID, true).
		Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("list public menu", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", menus)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, err)
		return
	}

	menu := models.Menu{
		RestaurantID: restaurantID,
		Category:     req.Category,
		Name:         req.Name,
		Description:  req.Description,
		IsVeg:        req.IsVeg,
		Price:        req.Price,
		HasHalf:      req.HasHalf,
		HalfPrice:    req.HalfPrice,
		IsEnabled:    true,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("create menu", err))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) findOwnedMenu(c *gin.Context) (*models.Menu, error) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		return nil, apperrors.Validation("menu_id", "invalid menu id")
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("load menu", err)
	}
	if menu.RestaurantID != middlewares.RestaurantID(c) {
		return nil, apperrors.ErrUnauthorized
	}
	return &menu, nil
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	menu, err := mc.findOwnedMenu(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req menuReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", "invalid JSON payload"))
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, err)
		return
	}

	menu.Category = req.Category
	menu.Name = req.Name
	menu.Description = req.Description
	menu.IsVeg = req.IsVeg
	menu.Price = req.Price
	menu.HasHalf = req.HasHalf
	menu.HalfPrice = req.HalfPrice

	if err := mc.DB.Save(menu).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("update menu", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// ToggleMenu -> nonaktifkan/aktifkan tanpa menghapus; order lama yang
// menyimpan snapshot item ini tidak terpengaruh.
func (mc *MenuController) ToggleMenu(c *gin.Context) {
	menu, err := mc.findOwnedMenu(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	menu.IsEnabled = !menu.IsEnabled
	if err := mc.DB.Save(menu).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("toggle menu", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	menu, err := mc.findOwnedMenu(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := mc.DB.Delete(menu).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("delete menu", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}
