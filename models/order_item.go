package models

import (
	"time"
)

// OrderItem adalah satu baris pilihan diner. Name, IsVeg, Category, dan Price
// adalah snapshot saat order dibuat, bukan referensi hidup ke menu — kalau harga
// menu berubah besok, baris ini tidak ikut berubah.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	Order    Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID   uint    `gorm:"not null" json:"menu_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	IsVeg    bool    `gorm:"not null" json:"is_veg"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Portion  string  `gorm:"type:varchar(10);not null;default:'full'" json:"portion"`
	Category string  `gorm:"type:varchar(100);not null" json:"category"`
	Notes    string  `gorm:"type:text" json:"notes,omitempty"`
	// Position menjaga urutan kiriman diner, dipakai untuk urutan stabil
	// saat konsolidasi bill.
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
