package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/traveldesk/travel-requests/internal/api/handler"
	"github.com/traveldesk/travel-requests/internal/api/middleware"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Registerer defaults to the
// global Prometheus registry when nil.
type Deps struct {
	Logger     zerolog.Logger
	Tokens     ports.TokenParser
	Auth       ports.AuthService
	Travel     ports.TravelService
	Export     ports.ExportService
	Stats      ports.StatsService
	Chat       ports.ChatService
	Checks     map[string]handler.Pinger
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "travel_http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	travelHandler := handler.NewTravelHandler(deps.Travel, deps.Export)
	statsHandler := handler.NewStatsHandler(deps.Stats)
	chatHandler := handler.NewChatHandler(deps.Chat, deps.Logger)

	authRequired := middleware.Auth(deps.Tokens)
	staffOnly := middleware.RequireStaff()

	// --- Auth routes ---
	e.POST("/register/", authHandler.Register)
	e.POST("/login/", authHandler.Login)
	e.POST("/api/token/refresh/", authHandler.Refresh)

	// --- Travel requests ---
	travel := e.Group("/travel-requests", authRequired)
	travel.GET("/", travelHandler.List)
	travel.POST("/", travelHandler.Create)
	// static segment is matched before :id
	travel.GET("/export/", travelHandler.Export, staffOnly)
	travel.GET("/:id/", travelHandler.Get)
	travel.PUT("/:id/", travelHandler.Update)
	travel.PATCH("/:id/", travelHandler.Update)
	travel.DELETE("/:id/", travelHandler.Delete)
	travel.GET("/:id/history/", travelHandler.History, staffOnly)

	// --- Staff dashboard ---
	e.GET("/stats/", statsHandler.Get, authRequired, staffOnly)
	e.POST("/chat/", chatHandler.Chat, authRequired, staffOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gathererFor(registerer),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// gathererFor exposes whatever registry the middleware wrote to.
func gathererFor(r prometheus.Registerer) prometheus.Gatherer {
	if g, ok := r.(prometheus.Gatherer); ok {
		return g
	}
	return prometheus.DefaultGatherer
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	})
}
