package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/saintdavies/property-console/docs"
	"github.com/saintdavies/property-console/internal/api/handler"
	"github.com/saintdavies/property-console/internal/api/middleware"
	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/core/service"
)

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Sessions  *service.SessionManager
	Tokens    ports.TokenIssuer
	Accounts  ports.AccountService
	Activity  ports.ActivityRepository
	JWTSecret string
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	// Metrics receives the HTTP request metrics and backs /metrics.
	// Defaults to the global Prometheus registry.
	Metrics *prometheus.Registry
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "property_console",
		Registerer: registerer(deps.Metrics),
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Tokens)
	accessHandler := handler.NewAccessHandler()
	userHandler := handler.NewUserHandler(deps.Accounts)
	activityHandler := handler.NewActivityHandler(deps.Activity)
	onboardingHandler := handler.NewOnboardingHandler()
	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Sessions)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/session", authHandler.Session, authMiddleware)

	// --- Access decisions ---
	v1 := e.Group("/v1")
	v1.GET("/onboarding/screens", onboardingHandler.Screens)

	secured := v1.Group("", authMiddleware)
	secured.GET("/navigation", accessHandler.Navigation)
	secured.POST("/access/check", accessHandler.Check)
	secured.GET("/views/:view", accessHandler.View, middleware.ViewGuard("view"))

	userAdmin := middleware.Guard("users", domain.RequireAny(domain.PermManageUsers, domain.PermInviteUsers))
	secured.GET("/roles", accessHandler.Roles, userAdmin)
	secured.POST("/users", userHandler.Register, userAdmin)
	secured.GET("/activity", activityHandler.List, middleware.Guard("activity", domain.Require(domain.PermViewUserActivity)))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer(deps.Metrics)}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func registerer(r *prometheus.Registry) prometheus.Registerer {
	if r == nil {
		return prometheus.DefaultRegisterer
	}
	return r
}

func gatherer(r *prometheus.Registry) prometheus.Gatherer {
	if r == nil {
		return prometheus.DefaultGatherer
	}
	return r
}
