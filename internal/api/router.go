package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dhanu2426/corporate-banking-system/docs"
	"github.com/dhanu2426/corporate-banking-system/internal/api/handler"
	"github.com/dhanu2426/corporate-banking-system/internal/api/middleware"
	"github.com/dhanu2426/corporate-banking-system/internal/core/policy"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
	"github.com/dhanu2426/corporate-banking-system/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Tokens  ports.TokenService
	Auth    ports.AuthService
	Users   ports.UserService
	Clients ports.ClientService
	Credits ports.CreditService

	// Readiness checks run by GET /health/ready, keyed by dependency name.
	Readiness map[string]handlers.Check

	// Registry receives the HTTP request metrics. The default registry is
	// used when nil.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: metricsSubsystem}
	metricsHandler := echoprometheus.NewHandler()
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Readiness, deps.Logger).Readiness)
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	clientHandler := handler.NewClientHandler(deps.Clients)
	creditHandler := handler.NewCreditHandler(deps.Credits)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("", middleware.Auth(deps.Tokens))
	can := middleware.RBAC

	secured.GET("/users/me", userHandler.Me, can(policy.ActionProfileRead))

	// --- Admin ---
	secured.GET("/admin/users", userHandler.List, can(policy.ActionUserList))
	secured.PUT("/admin/users/:id/status", userHandler.SetStatus, can(policy.ActionUserSetStatus))

	// --- Relationship managers ---
	secured.POST("/rm/clients", clientHandler.Create, can(policy.ActionClientCreate))
	secured.GET("/rm/clients", clientHandler.List, can(policy.ActionClientRead))
	secured.GET("/rm/clients/search", clientHandler.Search, can(policy.ActionClientSearch))
	secured.GET("/rm/clients/:id", clientHandler.Get, can(policy.ActionClientRead))
	secured.PUT("/rm/clients/:id", clientHandler.Update, can(policy.ActionClientUpdate))

	secured.POST("/rm/credit-requests", creditHandler.Create, can(policy.ActionCreditCreate))
	secured.GET("/rm/credit-requests", creditHandler.ListOwn, can(policy.ActionCreditListOwn))
	secured.GET("/rm/credit-requests/:id", creditHandler.Get, can(policy.ActionCreditRead))

	// --- Analysts ---
	secured.GET("/analyst/credit-requests", creditHandler.ListAll, can(policy.ActionCreditListAll))
	secured.GET("/analyst/credit-requests/:id", creditHandler.Get, can(policy.ActionCreditRead))
	secured.PUT("/analyst/credit-requests/:id", creditHandler.SetStatus, can(policy.ActionCreditSetStatus))
	secured.GET("/analyst/credit-requests/:id/history", creditHandler.History, can(policy.ActionCreditHistory))

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
