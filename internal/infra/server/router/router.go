// Package router provides HTTP routing configuration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/integration/entrypoint/controller"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
)

// Router holds the HTTP router configuration.
type Router struct {
	healthController      *controller.HealthController
	authController        *controller.AuthController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	goalController        *controller.GoalController
	dashboardController   *controller.DashboardController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		transactionController: transactionController,
		categoryController:    categoryController,
		goalController:        goalController,
		dashboardController:   dashboardController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	engine := gin.Default()

	engine.GET("/health", r.healthController.Check)

	v1 := engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.Authenticate())
		{
			transactions := protected.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}

			categories := protected.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PUT("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}

			goals := protected.Group("/goals")
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.PUT("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
			}

			protected.GET("/dashboard", r.dashboardController.Get)
		}
	}

	return engine
}
