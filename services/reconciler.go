package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

// Reconciler adalah backstop untuk push websocket yang bersifat best-effort:
// setiap interval, order yang berubah sejak sweep terakhir disiarkan ulang ke
// restoran pemiliknya. Push memberi latensi rendah, poll ini memberi
// kebenaran eventual; client men-dedup berdasarkan id order, jadi menerima
// dua kali tidak masalah — idempoten untuk mana pun yang tiba duluan.
type Reconciler struct {
	DB       *gorm.DB
	Hub      events.Emitter
	StopChan chan struct{}
	Interval time.Duration

	lastSweep time.Time
}

func NewReconciler(db *gorm.DB, hub events.Emitter) *Reconciler {
	return &Reconciler{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: 10 * time.Second,
	}
}

func (r *Reconciler) Start() {
	r.lastSweep = time.Now()
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.StopChan:
				return
			}
		}
	}()
}

func (r *Reconciler) Stop() {
	close(r.StopChan)
}

func (r *Reconciler) sweep() {
	// Watermark diambil sebelum query supaya perubahan yang masuk selama
	// sweep tidak hilang; paling buruk disiarkan dua kali.
	sweepStart := time.Now()

	var orders []models.Order
	err := r.DB.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Where("updated_at > ?", r.lastSweep).
		Limit(500).
		Find(&orders).Error
	if err != nil {
		utils.ErrorLogger.Printf("reconciler sweep failed: %v", err)
		return
	}

	for i := range orders {
		r.Hub.Emit(events.EventOrderUpdated, orders[i].RestaurantID, orders[i])
	}
	if len(orders) > 0 {
		utils.InfoLogger.Printf("reconciler re-broadcast %d changed orders", len(orders))
	}

	r.lastSweep = sweepStart
}
