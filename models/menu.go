package models

import "time"

type Menu struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	RestaurantID uint     `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   User     `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Category     string   `gorm:"type:varchar(100);not null" json:"category"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Description  string   `gorm:"type:text" json:"description"`
	IsVeg        bool     `gorm:"not null;default:false" json:"is_veg"`
	Price        float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	HasHalf      bool     `gorm:"not null;default:false" json:"has_half"`
	HalfPrice    *float64 `gorm:"type:decimal(10,2)" json:"half_price,omitempty"`
	// Menu yang dinonaktifkan tidak muncul untuk diner, tapi order lama tetap utuh.
	IsEnabled bool      `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// PriceFor mengembalikan harga menu untuk porsi yang diminta.
// Porsi half hanya valid kalau HasHalf true.
func (m *Menu) PriceFor(portion string) (float64, bool) {
	switch portion {
	case PortionFull:
		return m.Price, true
	case PortionHalf:
		if m.HasHalf && m.HalfPrice != nil {
			return *m.HalfPrice, true
		}
	}
	return 0, false
}
