package router

import (
	"github.com/beautique/beautique-backend/config"
	"github.com/beautique/beautique-backend/internal/app/controller"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	orderController     *controller.OrderController
	analyticsController *controller.AnalyticsController
	uploadController    *controller.UploadController
	dashboardController *controller.DashboardController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	analyticsController *controller.AnalyticsController,
	uploadController *controller.UploadController,
	dashboardController *controller.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		orderController:     orderController,
		analyticsController: analyticsController,
		uploadController:    uploadController,
		dashboardController: dashboardController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Beautique API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/bestsellers", r.productController.GetBestsellers)
			products.GET("/:id", r.productController.GetProductByID)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("/track", r.orderController.TrackOrder)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/auth/login", r.authController.Login)

			authed := admin.Group("")
			authed.Use(r.authMiddleware.RequireAdmin())
			{
				authed.POST("/auth/logout", r.authController.Logout)
				authed.GET("/auth/me", r.authController.Me)

				authed.GET("/products", r.productController.AdminListProducts)
				authed.GET("/products/:id", r.productController.AdminGetProduct)
				authed.POST("/products", r.productController.AdminCreateProduct)
				authed.PUT("/products/:id", r.productController.AdminUpdateProduct)
				authed.DELETE("/products/:id", r.productController.AdminDeleteProduct)
				authed.POST("/products/:id/images", r.productController.AdminAppendProductImages)

				authed.GET("/orders", r.orderController.AdminListOrders)
				authed.GET("/orders/export", r.orderController.AdminExportOrders)
				authed.GET("/orders/:id", r.orderController.AdminGetOrder)
				authed.PATCH("/orders/:id/status", r.orderController.AdminUpdateOrderStatus)

				authed.GET("/analytics/dashboard", r.analyticsController.Dashboard)
				authed.GET("/dashboard/feed", r.dashboardController.Feed)

				authed.POST("/uploads/presign", r.uploadController.PresignUpload)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
