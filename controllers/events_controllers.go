package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/middlewares"
	"github.com/yeremiapane/table-order-app/utils"
)

type EventsController struct {
	Hub *events.Hub
}

func NewEventsController(hub *events.Hub) *EventsController {
	return &EventsController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin sudah disaring CORS middleware; token query divalidasi
		// WebSocketAuthMiddleware sebelum sampai sini.
		return true
	},
}

// HandleWS -> upgrade koneksi sesi staff dan daftarkan ke hub restoran.
// Koneksi hanya menerima push; tidak ada pesan masuk yang diproses, read
// loop cuma menunggu close.
func (ec *EventsController) HandleWS(c *gin.Context) {
	restaurantID := middlewares.RestaurantID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	ec.Hub.Register(conn, restaurantID)
	utils.InfoLogger.Printf("websocket client connected for restaurant %d", restaurantID)

	go func() {
		defer ec.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
