package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/controllers"
	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/middlewares"
)

// SetupRouter merangkai semua route. Hub di-inject sampai ke controller;
// tidak ada broadcast lewat state global.
func SetupRouter(db *gorm.DB, hub *events.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	exportCtrl := controllers.NewExportController(db)
	eventsCtrl := controllers.NewEventsController(hub)

	api := r.Group("/api")

	// Endpoint publik: dipakai client diner (scan QR) tanpa login.
	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}
	api.GET("/menu", menuCtrl.GetPublicMenu)
	api.POST("/orders", orderCtrl.CreateOrder)
	api.GET("/orders/submit-status", orderCtrl.GetSubmitGateStatus)

	// Endpoint staff: semua di-scope ke restoran dari token.
	staff := api.Group("")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.GET("/restaurant", userCtrl.GetRestaurantDetails)

		staff.GET("/menus", menuCtrl.GetMenus)
		staff.POST("/menus", menuCtrl.CreateMenu)
		staff.PUT("/menus/:menu_id", menuCtrl.UpdateMenu)
		staff.PATCH("/menus/:menu_id/toggle", menuCtrl.ToggleMenu)
		staff.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		staff.GET("/orders/live", orderCtrl.GetLiveOrders)
		staff.GET("/orders/recurring", orderCtrl.GetRecurringOrders)
		staff.GET("/orders/past", orderCtrl.GetPastOrders)
		staff.GET("/orders/stats", orderCtrl.GetOrderStats)
		staff.GET("/orders/export", exportCtrl.ExportOrders)
		staff.PATCH("/orders/:order_id/advance", orderCtrl.AdvanceToRecurring)
		staff.PATCH("/orders/:order_id/move-back", orderCtrl.MoveToRecurring)
		staff.GET("/orders/:order_id/receipt", orderCtrl.ReprintReceipt)
		staff.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		staff.POST("/tables/:table_no/settle", orderCtrl.CompleteOrders)
		staff.PATCH("/settings/submit-gate", orderCtrl.ToggleSubmitGate)
	}

	// Websocket: token lewat query, bukan header.
	api.GET("/ws", middlewares.WebSocketAuthMiddleware(), eventsCtrl.HandleWS)

	return r
}
