package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-order-app/utils"
)

// AuthMiddleware memvalidasi bearer token staff dan menaruh restaurantID
// ke context. Semua route staff lewat sini.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondErrorCode(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondErrorCode(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("restaurantID", claims.RestaurantID)
		c.Next()
	}
}

// WebSocketAuthMiddleware: upgrade websocket tidak bisa bawa header
// Authorization dari browser, jadi token lewat query string.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("restaurantID", claims.RestaurantID)
		c.Next()
	}
}

// RestaurantID mengambil id restoran yang sudah diisi middleware auth.
func RestaurantID(c *gin.Context) uint {
	v, _ := c.Get("restaurantID")
	id, _ := v.(uint)
	return id
}
