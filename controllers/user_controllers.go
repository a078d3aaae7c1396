package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/apperrors"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register akun restoran baru.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=8"`
		RestaurantName string `json:"restaurant_name" binding:"required"`
		GSTNumber      string `json:"gst_number"`
		FSSAINumber    string `json:"fssai_number"`
		PhoneNumber    string `json:"phone_number"`
		Address        string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", err.Error()))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, apperrors.Storage("hash password", err))
		return
	}

	user := models.User{
		Email:          strings.ToLower(req.Email),
		Password:       string(hashed),
		RestaurantName: req.RestaurantName,
		GSTNumber:      req.GSTNumber,
		FSSAINumber:    req.FSSAINumber,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, apperrors.Storage("create user", err))
		return
	}

	utils.InfoLogger.Printf("New restaurant registered: %s (%s)", user.RestaurantName, user.Email)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant registered", gin.H{
		"restaurant_id": user.ID,
	})
}

// Login -> verifikasi bcrypt, keluarkan JWT berisi restaurant_id.
func (uc *UserController) Login(c *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.Validation("body", err.Error()))
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondErrorCode(c, http.StatusUnauthorized, errors.New("invalid email or password"))
			return
		}
		utils.RespondError(c, apperrors.Storage("load user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondErrorCode(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.RespondError(c, apperrors.Storage("generate token", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":         token,
		"restaurant_id": user.ID,
	})
}

// GetRestaurantDetails -> header struk: nama, GST, FSSAI, kontak.
func (uc *UserController) GetRestaurantDetails(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	var user models.User
	if err := uc.DB.First(&user, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, apperrors.ErrNotFound)
			return
		}
		utils.RespondError(c, apperrors.Storage("load restaurant", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant details", gin.H{
		"name":         user.RestaurantName,
		"gst":          user.GSTNumber,
		"fssai":        user.FSSAINumber,
		"phone_number": user.PhoneNumber,
		"address":      user.Address,
	})
}
