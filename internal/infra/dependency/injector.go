// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/budget-planner/backend/config"
	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/application/ledger"
	"github.com/budget-planner/backend/internal/application/usecase/auth"
	"github.com/budget-planner/backend/internal/infra/server/router"
	"github.com/budget-planner/backend/internal/integration/adapters"
	"github.com/budget-planner/backend/internal/integration/cache"
	"github.com/budget-planner/backend/internal/integration/entrypoint/controller"
	"github.com/budget-planner/backend/internal/integration/entrypoint/middleware"
)

// Repositories groups the persistence interfaces the application needs. The
// caller decides which backend provides them (PostgreSQL or the file store).
type Repositories struct {
	Users        adapter.UserRepository
	Transactions adapter.TransactionRepository
	Categories   adapter.CategoryRepository
	Goals        adapter.GoalRepository
}

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	Ledgers *ledger.Manager
	Router  *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, repos Repositories, redisClient *redis.Client) *Injector {
	// Create adapters/services
	refreshTokenStore := cache.NewRedisRefreshTokenStore(redisClient)
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, refreshTokenStore)

	// Create the per-user ledger session manager
	ledgers := ledger.NewManager(repos.Transactions, repos.Categories, repos.Goals, repos.Users)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(repos.Users, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(repos.Users, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, ledgers)

	// Create controllers
	healthController := controller.NewHealthController()
	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	transactionController := controller.NewTransactionController(ledgers)
	categoryController := controller.NewCategoryController(ledgers)
	goalController := controller.NewGoalController(ledgers)
	dashboardController := controller.NewDashboardController(ledgers)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		categoryController,
		goalController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:  cfg,
		Ledgers: ledgers,
		Router:  r,
	}
}
