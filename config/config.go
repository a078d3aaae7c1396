package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB membuka koneksi database dari environment.
// DB_DRIVER=mysql dengan DB_DSN untuk produksi; selain itu jatuh ke file
// sqlite lokal (cukup untuk development).
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "table_order.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
