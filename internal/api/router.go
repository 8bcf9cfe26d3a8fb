package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/userhub/account-service/docs"
	"github.com/userhub/account-service/internal/api/handler"
	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
	"github.com/userhub/account-service/internal/core/service"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-service/internal/infrastructure/db/redis"
	"github.com/userhub/account-service/internal/pkg/token"
)

// NewRouter builds the Echo instance over the concrete infrastructure and
// registers all routes, including the dependency readiness probe.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens *token.Service, log zerolog.Logger) *echo.Echo {
	e := newRouter(mongodb.NewUserRepository(db), redisdb.NewProfileCache(rdb), tokens, log)

	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}

// newRouter assembles the route tree over the repository and cache ports so
// tests can drive the full HTTP surface against stubs.
func newRouter(userRepo ports.UserRepository, profileCache ports.ProfileCache, tokens *token.Service, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, profileCache)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authGuard := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected account routes ---
	e.GET("/me", userHandler.Me, authGuard)
	e.GET("/users", userHandler.List, authGuard, middleware.RBAC(domain.RoleAdmin))
	e.GET("/users/:id", userHandler.Get, authGuard)
	e.PATCH("/block/:id", userHandler.Block, authGuard)

	// --- Health liveness probe (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
