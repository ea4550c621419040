package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devtrack/bug-tracking-system/internal/api/handler"
	"github.com/devtrack/bug-tracking-system/internal/api/middleware"
	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/service"
	"github.com/devtrack/bug-tracking-system/internal/infrastructure/config"
	mongodb "github.com/devtrack/bug-tracking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/devtrack/bug-tracking-system/internal/infrastructure/db/redis"
	"github.com/devtrack/bug-tracking-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bugtracker"))

	// --- Dependencies ---
	bugRepo := mongodb.NewBugRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	locker := redisdb.NewMutex(rdb)

	authService := service.NewAuthService(employeeRepo, cfg.JWTSecret, cfg.TokenTTL)
	bugService := service.NewBugService(bugRepo, employeeRepo, cfg.UnassignResetsStatus, log)
	employeeService := service.NewEmployeeService(employeeRepo, bugRepo, locker, log)

	authHandler := handler.NewAuthHandler(authService)
	bugHandler := handler.NewBugHandler(bugService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	authenticated := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRoles(domain.RoleAdministrator)

	// --- Auth ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Bugs (any authenticated role; writes gated by the engine) ---
	bugs := e.Group("/api/bugs", authenticated)
	bugs.GET("", bugHandler.List)
	bugs.GET("/:id", bugHandler.Get)
	bugs.POST("", bugHandler.Create)
	bugs.PUT("/:id", bugHandler.Update)
	bugs.DELETE("/:id", bugHandler.Delete)

	// --- Employees (Administrator only) ---
	employees := e.Group("/api/employees", authenticated, adminOnly)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.POST("", employeeHandler.Create)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
