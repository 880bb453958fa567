package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/handler"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/middleware"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/service"
	mongodb "github.com/MarkRamington/silvanum-ink-terminal/internal/infrastructure/db/mongo"
	redisdb "github.com/MarkRamington/silvanum-ink-terminal/internal/infrastructure/db/redis"
)

// RouterConfig carries the knobs NewRouter needs beyond its storage handles.
type RouterConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	AuditSink     service.AuditSink
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("silvanum"))

	// --- Dependencies ---
	employeeRepo := mongodb.NewEmployeeRepository(db)
	bindingRepo := mongodb.NewBindingRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionSecret, cfg.SessionTTL)

	identityService := service.NewIdentityService(employeeRepo, bindingRepo, cfg.Logger)
	bootstrapService := service.NewBootstrapService(sessions, identityService, cfg.AuditSink, cfg.Logger)
	customerService := service.NewCustomerService(customerRepo, cfg.Logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, customerRepo, cfg.Logger)
	employeeService := service.NewEmployeeService(employeeRepo, cfg.Logger)

	sessionHandler := handler.NewSessionHandler(bootstrapService, identityService)
	customerHandler := handler.NewCustomerHandler(customerService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	sessionMW := middleware.Session(sessions)
	identityMW := middleware.Identity(identityService)
	managerMW := middleware.Role(domain.RoleManager)

	// --- Session bootstrap and login ---
	v1 := e.Group("/v1")
	v1.POST("/sessions", sessionHandler.Start)
	v1.POST("/sessions/login", sessionHandler.Login, sessionMW)
	v1.GET("/sessions/identity", sessionHandler.Identity, sessionMW)
	v1.DELETE("/sessions", sessionHandler.Logout, sessionMW)

	// --- Business routes: anonymous session + bound identity required ---
	bound := v1.Group("", sessionMW, identityMW)
	bound.POST("/customers", customerHandler.Create)
	bound.GET("/customers", customerHandler.List)
	bound.GET("/customers/:id", customerHandler.Get)
	bound.POST("/appointments", appointmentHandler.Create)
	bound.GET("/appointments", appointmentHandler.List)
	bound.GET("/appointments/:id", appointmentHandler.Get)

	// --- Staff management: manager role only ---
	bound.POST("/employees", employeeHandler.Create, managerMW)
	bound.DELETE("/employees/:id", employeeHandler.Deactivate, managerMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
