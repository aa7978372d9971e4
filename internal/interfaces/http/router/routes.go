package router

import (
	"net/http"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/auth"
	"github.com/donorlink/backend/internal/infrastructure/cache"
	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/donorlink/backend/internal/interfaces/http/handler"
	"github.com/donorlink/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineOptions configures the HTTP engine
type EngineOptions struct {
	HTTP       config.HTTPConfig
	JWTService *auth.JWTService
	// Counter backs the auth rate limit; required when it is enabled
	Counter cache.Counter
	// Keys backs the Idempotency-Key guard on create routes; nil disables it
	Keys    cache.KeyStore
	Tracing middleware.TracingConfig
	// Meter receives HTTP request metrics; nil disables them
	Meter metric.Meter
	// Profiling labels profiler samples per route
	Profiling bool
	Logger    *zap.Logger
}

// NewEngine builds the gin engine with the middleware stack and every route
func NewEngine(h *handler.Handlers, opts EngineOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()

	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order: request id, server span, metrics, profiler labels, access log,
	// panic recovery, security headers, CORS. The body limit sits on /api.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(opts.Tracing)...)
	engine.Use(middleware.HTTPMetrics(opts.Meter))
	engine.Use(middleware.Profiling(opts.Profiling))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(opts.HTTP)))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Route not found"))
	})
	engine.GET("/health", h.System.Health)

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: opts.JWTService,
		Logger:     log,
	})

	authRoutes := NewDomainGroup("auth", "/auth")
	limited := make([]gin.HandlerFunc, 0, 1)
	if opts.HTTP.AuthRateLimitEnabled && opts.Counter != nil {
		limited = append(limited, middleware.RateLimit(middleware.RateLimitConfig{
			Counter: opts.Counter,
			Limit:   opts.HTTP.AuthRateLimitRequests,
			Window:  opts.HTTP.AuthRateLimitWindow,
			Scope:   "auth",
			Logger:  log,
		}))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", opts.HTTP.AuthRateLimitRequests),
			zap.Duration("window", opts.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/register", append(limited[:len(limited):len(limited)], h.Auth.Register)...)
	authRoutes.POST("/login", append(limited[:len(limited):len(limited)], h.Auth.Login)...)
	authRoutes.GET("/verify", requireAuth, h.Auth.Verify)

	userRoutes := NewDomainGroup("users", "/users")
	userRoutes.GET("/ngos", h.User.ListNGOs)
	userRoutes.GET("/:id", h.User.GetUser)

	idempotent := func(scope string, handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{requireAuth}
		if opts.Keys != nil {
			chain = append(chain, middleware.Idempotency(middleware.IdempotencyConfig{
				Store:  opts.Keys,
				TTL:    opts.HTTP.IdempotencyTTL,
				Scope:  scope,
				Logger: log,
			}))
		}
		return append(chain, handler)
	}

	donationRoutes := NewDomainGroup("donations", "/donations")
	donationRoutes.GET("", h.Donation.ListCompleted)
	donationRoutes.POST("", idempotent("donations", h.Donation.Create)...)
	donationRoutes.GET("/donor/:donorId", requireAuth, h.Donation.ListByDonor)
	donationRoutes.GET("/ngo/:ngoId", requireAuth, h.Donation.ListByNGO)
	donationRoutes.GET("/:id", requireAuth, h.Donation.Get)
	donationRoutes.PUT("/:id/status", requireAuth, h.Donation.UpdateStatus)
	donationRoutes.POST("/:id/request-again", requireAuth, h.Donation.RequestAgain)

	requirementRoutes := NewDomainGroup("requirements", "/requirements")
	requirementRoutes.GET("", h.Requirement.List)
	requirementRoutes.POST("", idempotent("requirements", h.Requirement.Create)...)
	requirementRoutes.GET("/ngo/:id", h.Requirement.ListByNGO)
	requirementRoutes.GET("/category/:category", h.Requirement.ListByCategory)
	requirementRoutes.GET("/:id", h.Requirement.Get)
	requirementRoutes.PUT("/:id", requireAuth, h.Requirement.Update)
	requirementRoutes.DELETE("/:id", requireAuth, h.Requirement.Delete)

	connectionRoutes := NewDomainGroup("connections", "/connections").Use(requireAuth)
	connectionRoutes.GET("", h.Connection.List)
	connectionRoutes.POST("/:ngoId", h.Connection.Connect)
	connectionRoutes.DELETE("/:ngoId", h.Connection.Disconnect)

	notificationRoutes := NewDomainGroup("notifications", "/notifications").Use(requireAuth)
	notificationRoutes.GET("", h.Notification.List)
	notificationRoutes.POST("/mark-read", h.Notification.MarkRead)

	systemRoutes := NewDomainGroup("system", "")
	systemRoutes.GET("/health", h.System.Health)
	systemRoutes.GET("/db-status", h.System.DBStatus)

	api := NewRouter(engine)
	if opts.HTTP.MaxBodySize > 0 {
		api.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}
	api.Register(authRoutes).
		Register(userRoutes).
		Register(donationRoutes).
		Register(requirementRoutes).
		Register(connectionRoutes).
		Register(notificationRoutes).
		Register(systemRoutes).
		Setup()

	return engine
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	return cors
}
