package routes

import (
	"smartclaim-api/controllers"
	"smartclaim-api/middleware"
	"smartclaim-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "SmartClaim API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Claims
			claims := protected.Group("/claims")
			{
				claims.POST("", controllers.CreateClaim)
				claims.GET("", controllers.ListClaims)
				claims.GET("/:id", controllers.GetClaim)
				claims.POST("/:id/submit", controllers.SubmitClaim)

				// Receipt uploads happen before claim creation
				claims.POST("/uploads", controllers.UploadAttachments)

				// Decision preconditions (role, ownership, pending state) are
				// enforced in the lifecycle service, in a fixed order
				claims.POST("/:id/approve", controllers.DecideClaim)
			}

			// Reports (managers and admins)
			reports := protected.Group("/reports")
			reports.Use(middleware.RequireRole(models.RoleManager, models.RoleAdmin))
			{
				reports.GET("", controllers.GetReport)
				reports.GET("/export", controllers.ExportReport)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.ListUsers)
				admin.PATCH("/users/:id/role", controllers.ChangeUserRole)
			}
		}
	}
}
