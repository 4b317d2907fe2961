package routes

import (
	"table-service-api/handlers"
	"table-service-api/middleware"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes (customer devices, no login) ─────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", h.Login)

		// Menu & session view for the table's QR-link clients
		public.GET("/menu", h.GetMenu)
		public.GET("/session/:id", h.GetSession)
		public.GET("/session/:id/orders", h.GetSessionOrders)
		public.POST("/orders", h.CreateOrder)

		// Event stream: every client role subscribes here
		public.GET("/events", h.StreamEvents)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated staff routes ─────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired())
	{
		staff.GET("/profile", h.GetProfile)
		staff.GET("/sessions/active", h.ListActiveSessions)
	}

	// ── Kitchen & runner routes ────────────────────────────────────
	fulfillment := r.Group("/api")
	fulfillment.Use(middleware.AuthRequired(),
		middleware.RoleRequired(models.RoleKitchen, models.RoleRunner, models.RoleAdmin))
	{
		fulfillment.GET("/kitchen/orders", h.GetKitchenOrders)
		fulfillment.PATCH("/items/:id/status", h.UpdateItemStatus)
		fulfillment.PATCH("/kitchen/menu-items/:id/unavailable", h.MarkMenuItemUnavailable)
	}

	// ── Admin / cashier routes ─────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// Front of house
		admin.POST("/sessions", h.OpenSession)
		admin.POST("/sessions/:id/cancel", h.CancelSession)
		admin.POST("/billing/close", h.CloseBilling)
		admin.GET("/billing/session/:sessionId", h.GetBilling)

		// Catalog & pricing management
		admin.POST("/tables", h.CreateTable)
		admin.GET("/tables", h.ListTables)
		admin.DELETE("/tables/:id", h.DeleteTable)
		admin.POST("/packages", h.CreatePackage)
		admin.GET("/packages", h.ListPackages)
		admin.POST("/categories", h.CreateCategory)
		admin.POST("/menu-items", h.CreateMenuItem)
		admin.PUT("/menu-items/:id", h.UpdateMenuItem)
		admin.POST("/extra-charges", h.CreateExtraCharge)
		admin.GET("/extra-charges", h.ListExtraCharges)
		admin.POST("/promotions", h.CreatePromotion)
		admin.GET("/promotions", h.ListPromotions)

		// Staff accounts
		admin.POST("/users", h.CreateUser)
		admin.GET("/users", h.ListUsers)
	}
}
