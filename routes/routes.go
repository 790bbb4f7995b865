package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.Tokens, users middleware.UserLookup) {
	r.GET("/health", h.Health)
	r.GET("/", h.Welcome)

	authRequired := middleware.AuthRequired(tokens, users)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.POST("/auth/forgot-password", h.ForgotPassword)
		public.POST("/auth/reset-password", h.ResetPassword)

		// Catalog and floor plan
		public.GET("/dishes", h.ListDishes)
		public.GET("/dishes/:id", h.GetDish)
		public.GET("/tables", h.ListTables)
		public.GET("/tables/:id", h.GetTable)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authRequired)
	{
		auth.GET("/users/profile", h.GetProfile)
		auth.PUT("/users/profile", h.UpdateProfile)

		auth.GET("/orders", h.ListOrders)
		auth.GET("/orders/:id", h.GetOrder)
		auth.GET("/orders/:id/ticket", h.GetOrderTicket)
		auth.GET("/order_details/:orderId", h.GetOrderDetails)
		auth.PUT("/orders/:id",
			middleware.RoleRequired(models.RoleCook, models.RoleWaiter, models.RoleAdmin), h.UpdateOrderStatus)
	}

	// ── Floor staff routes ─────────────────────────────────────────
	floor := r.Group("/api")
	floor.Use(authRequired, middleware.RoleRequired(models.RoleWaiter, models.RoleAdmin))
	{
		floor.POST("/orders", h.CreateOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(authRequired, adminOnly)
	{
		admin.POST("/dishes", h.CreateDish)
		admin.PUT("/dishes/:id", h.UpdateDish)
		admin.DELETE("/dishes/:id", h.DeleteDish)

		admin.POST("/tables", h.CreateTable)
		admin.PUT("/tables/:id", h.UpdateTable)
		admin.DELETE("/tables/:id", h.DeleteTable)

		admin.DELETE("/orders/:id", h.DeleteOrder)

		admin.GET("/users", h.AdminGetAllUsers)
		admin.PATCH("/users/:id/active", h.AdminSetUserActive)
	}
}

// NewRouter builds the engine with the request pipeline and every route.
func NewRouter(h *handlers.Handler, tokens *middleware.Tokens, users middleware.UserLookup) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(h.Production), middleware.CORS())
	SetupRoutes(r, h, tokens, users)
	return r
}
