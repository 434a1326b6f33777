package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashurbayy/lifechip/config"
	"github.com/ashurbayy/lifechip/internal/middleware"
	"github.com/ashurbayy/lifechip/internal/service"
	"github.com/ashurbayy/lifechip/internal/session"
	"github.com/ashurbayy/lifechip/internal/store"
)

// HealthCheck returns the health status of the API.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "LifeChip API is running",
	})
}

// SetupRouter wires stores, services, handlers and middleware into a Gin
// engine. redisClient may be nil, in which case the public endpoints run
// without rate limiting.
func SetupRouter(cfg *config.Config, st store.Store, sessions *session.Manager, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var emergencyLimiter, contactLimiter *middleware.RateLimiter
	if redisClient != nil {
		emergencyLimiter = middleware.NewEmergencyLookupRateLimiter(redisClient)
		contactLimiter = middleware.NewContactFormRateLimiter(redisClient)
	}

	authService := service.NewAuthService(st, sessions)
	profileService := service.NewMedicalProfileService(st)
	contactService := service.NewContactService(st, logger)

	authHandler := NewAuthHandler(authService, sessions, logger, cfg.Env == config.Production)
	profileHandler := NewProfileHandler(profileService, sessions, logger)
	contactHandler := NewContactHandler(contactService, logger)

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	profileHandler.RegisterRoutes(apiGroup, emergencyLimiter)
	contactHandler.RegisterRoutes(apiGroup, contactLimiter)

	return router
}
