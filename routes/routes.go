package routes

import (
	"amardoctor/admin"
	"amardoctor/auth"
	"amardoctor/cart"
	"amardoctor/chats"
	"amardoctor/middleware"
	"amardoctor/notifications"
	"amardoctor/orders"
	"amardoctor/prescriptions"
	"amardoctor/pricelist"
	"amardoctor/profile"
	"amardoctor/ratelim"
	"amardoctor/settings"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/admin-login", rl.Limit(h.AdminLogin))
}

func AddProfileRoutes(router *httprouter.Router, h *profile.Handler) {
	router.GET("/api/profile", middleware.Authenticate(h.Get))
	router.PUT("/api/profile", middleware.Authenticate(h.Update))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.POST("/api/cart/items", middleware.Authenticate(h.AddItem))
	router.POST("/api/cart/manual", middleware.Authenticate(h.AddManual))
	router.PATCH("/api/cart/quantity", middleware.Authenticate(h.UpdateQuantity))
	router.POST("/api/cart/remove", middleware.Authenticate(h.RemoveItem))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler) {
	router.POST("/api/orders", middleware.Authenticate(h.Submit))
	router.GET("/api/orders", middleware.Authenticate(h.ListMine))
	router.GET("/api/orders/:id/qr", middleware.Authenticate(h.InvoiceQR))
	router.GET("/api/admin/orders", middleware.Authenticate(middleware.RequireAdmin(h.ListAll)))
	router.PATCH("/api/admin/orders/:id/price", middleware.Authenticate(middleware.RequireAdmin(h.StagePrice)))
	router.POST("/api/admin/orders/:id/reply", middleware.Authenticate(middleware.RequireAdmin(h.Reply)))
	router.DELETE("/api/admin/orders/:id", middleware.Authenticate(middleware.RequireAdmin(h.Remove)))
}

func AddPriceListRoutes(router *httprouter.Router, h *pricelist.Handler) {
	router.GET("/api/medicines", middleware.Authenticate(h.List))
	router.POST("/api/admin/medicines", middleware.Authenticate(middleware.RequireAdmin(h.Add)))
	router.PUT("/api/admin/medicines/:id", middleware.Authenticate(middleware.RequireAdmin(h.Update)))
	router.DELETE("/api/admin/medicines/:id", middleware.Authenticate(middleware.RequireAdmin(h.Remove)))
}

func AddChatRoutes(router *httprouter.Router, h *chats.Handler) {
	router.POST("/api/chat/messages", middleware.Authenticate(h.Send))
	router.GET("/api/chat/thread", middleware.Authenticate(h.Thread))
	router.GET("/api/admin/chat/:userId", middleware.Authenticate(middleware.RequireAdmin(h.ThreadWith)))
	router.GET("/api/admin/chat-roster", middleware.Authenticate(middleware.RequireAdmin(h.Roster)))
}

func AddNotificationRoutes(router *httprouter.Router, h *notifications.Handler) {
	router.GET("/api/notifications", middleware.Authenticate(h.List))
	router.POST("/api/notifications/read-all", middleware.Authenticate(h.MarkAllRead))
}

func AddPrescriptionRoutes(router *httprouter.Router, h *prescriptions.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/prescriptions/generate", rl.Limit(middleware.Authenticate(h.Generate)))
	router.GET("/api/prescriptions", middleware.Authenticate(h.ListHistory))
	router.GET("/api/medicines/search", rl.Limit(middleware.Authenticate(h.SearchMedicines)))
	router.GET("/api/medicines/guide", rl.Limit(middleware.Authenticate(h.MedicineGuide)))
}

func AddSettingsRoutes(router *httprouter.Router, h *settings.Handler) {
	router.GET("/api/config", middleware.Authenticate(h.GetConfig))
	router.PUT("/api/admin/config", middleware.Authenticate(middleware.RequireAdmin(h.UpdateConfig)))
}

func AddAdminRoutes(router *httprouter.Router, h *admin.Handler) {
	router.GET("/api/admin/users", middleware.Authenticate(middleware.RequireAdmin(h.ListUsers)))
	router.PATCH("/api/admin/users/:id/block", middleware.Authenticate(middleware.RequireAdmin(h.SetBlocked)))
}
