package models

import (
	"time"
)

// Status order. Alurnya: live -> recurring -> past. Satu-satunya jalur mundur
// adalah past -> recurring (koreksi), dan itu membatalkan receipt-nya.
const (
	StatusLive      = "live"
	StatusRecurring = "recurring"
	StatusPast      = "past"
)

const (
	PortionFull = "full"
	PortionHalf = "half"
)

type Order struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"not null;index:idx_rest_status" json:"restaurant_id"`
	Restaurant   User `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// TableNo 0 = order counter (bukan meja).
	TableNo    int         `gorm:"not null" json:"table_no"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Total      float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Status     string      `gorm:"type:varchar(20);not null;default:'live';index:idx_rest_status" json:"status"`
	// SettlementID menandai batch settlement; semua order yang ditutup dalam satu
	// bill memakai ID yang sama. Dipakai untuk membatalkan settlement per grup.
	SettlementID *string `gorm:"type:varchar(36);index" json:"settlement_id,omitempty"`
	// Receipt di-embed sebagai JSON di baris order (bukan tabel terpisah) supaya
	// satu kali baca baris sudah menghasilkan bill historis lengkap, bebas dari
	// perubahan menu belakangan.
	Receipt   *ReceiptDetails `gorm:"serializer:json" json:"receipt,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// ValidStatus memeriksa apakah s adalah status order yang dikenal.
func ValidStatus(s string) bool {
	switch s {
	case StatusLive, StatusRecurring, StatusPast:
		return true
	}
	return false
}

// CanTransition memeriksa apakah perpindahan status diizinkan.
// live -> recurring (staff acknowledge), recurring -> past (settlement),
// past -> recurring (move back). Sisanya ditolak.
func (o *Order) CanTransition(target string) bool {
	switch o.Status {
	case StatusLive:
		return target == StatusRecurring
	case StatusRecurring:
		return target == StatusPast
	case StatusPast:
		return target == StatusRecurring
	}
	return false
}
