package routes

import (
	"net/http"

	"github.com/Hounds1/Mosk-Server/internal/handlers"
	"github.com/Hounds1/Mosk-Server/internal/middleware"
	"github.com/gin-gonic/gin"
)

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// --- Auth ---
		v1.POST("/auth/login", h.Login)

		// --- Public Routes (no token) ---
		public := v1.Group("/public")
		{
			public.POST("/stores", h.RegisterStore)
			public.GET("/stores/duplicate", h.CheckEmailDuplicate)

			public.GET("/categories", h.GetCategoriesByStore)

			public.GET("/products", h.GetProduct)
			public.GET("/products/all", h.GetProductsByStore)
			public.GET("/products/category", h.GetProductsByCategory)
			public.GET("/products/keywords", h.SearchProducts)

			public.POST("/orders", h.CreateOrder)
			public.POST("/orders/payment", h.PayOrder)
		}

		// --- Store Routes (token required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/stores", h.GetMyStore)
			auth.PUT("/stores", h.UpdateMyStore)
			auth.DELETE("/stores", h.WithdrawStore)

			auth.POST("/categories", h.CreateCategory)
			auth.PUT("/categories/:categoryId", h.UpdateCategory)
			auth.DELETE("/categories/:categoryId", h.DeleteCategory)

			auth.POST("/products", h.CreateProduct)
			auth.PUT("/products", h.UpdateProduct)
			auth.DELETE("/products/:productId", h.DeleteProduct)
			auth.PATCH("/products/status", h.ChangeSellingStatus)

			auth.POST("/option-groups", h.CreateOptionGroup)
			auth.DELETE("/option-groups/:groupId", h.DeleteOptionGroup)
			auth.POST("/options", h.CreateOption)
			auth.DELETE("/options/:optionId", h.DeleteOption)

			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:orderId", h.GetOrderDetails)

			auth.GET("/subscribes", h.GetSubscribeHistory)
			auth.POST("/subscribes/payment", h.SubscribePayment)
		}
	}

	return router
}
