package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default hanya untuk development/test.
		secret = "TableOrderDevSecret"
	}
	JWTSecret = []byte(secret)
}

// CustomClaims membawa identitas restoran. Semua scoping otorisasi
// (order/menu milik siapa) berangkat dari RestaurantID ini.
type CustomClaims struct {
	RestaurantID uint `json:"restaurant_id"`
	jwt.RegisteredClaims
}

func GenerateToken(restaurantID uint) (string, error) {
	claims := &CustomClaims{
		RestaurantID: restaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "table-order-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.RestaurantID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
