package models

import "time"

// User adalah akun restoran. Satu user = satu restoran; semua menu dan order
// di-scope ke ID user ini.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string `gorm:"type:varchar(255);not null" json:"-"`
	RestaurantName string `gorm:"type:varchar(255);not null" json:"restaurant_name"`
	GSTNumber      string `gorm:"type:varchar(50)" json:"gst_number"`
	FSSAINumber    string `gorm:"type:varchar(50)" json:"fssai_number"`
	PhoneNumber    string `gorm:"type:varchar(20)" json:"phone_number"`
	Address        string `gorm:"type:text" json:"address"`
	// Submit gate: kalau true, order baru dari diner ditolak.
	IsSubmitDisabled bool      `gorm:"not null;default:false" json:"is_submit_disabled"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
