package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-order-app/utils"
)

// Event types
const (
	EventNewOrder          = "newOrder"
	EventOrderUpdated      = "orderUpdated"
	EventOrdersCompleted   = "ordersCompleted"
	EventOrderDeleted      = "orderDeleted"
	EventSubmitGateUpdated = "submitGateUpdated"
)

// Emitter adalah kontrak notifikasi yang di-inject ke controller. Transportnya
// (websocket hub) disuplai dari luar, bukan diakses lewat state global.
type Emitter interface {
	Emit(event string, restaurantID uint, data interface{})
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi sesi staff per restoran. Pengiriman best-effort:
// koneksi yang gagal ditulis di-drop dan client mengandalkan polling +
// dedup by id untuk konvergen.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> restaurantID
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]uint)}
}

// Register menambahkan koneksi untuk satu restoran.
func (h *Hub) Register(conn *websocket.Conn, restaurantID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = restaurantID
}

// Unregister melepaskan dan menutup koneksi.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Emit menyiarkan event ke semua sesi milik restaurantID. Fire-and-forget:
// mutator tidak menunggu ack dari listener mana pun.
func (h *Hub) Emit(event string, restaurantID uint, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("error marshaling %s event: %v", event, err)
		return
	}

	for conn, rid := range h.clients {
		if rid != restaurantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("error sending %s event, dropping client: %v", event, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
