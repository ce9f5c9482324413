package server

import (
	"log/slog"

	"libraryhub/internal/config"
	"libraryhub/internal/microservices/http-api/handler"
	"libraryhub/internal/microservices/http-api/middleware"
	"libraryhub/internal/microservices/websocket"
	"libraryhub/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "libraryhub/docs"
)

type RouterConfig struct {
	Config        *config.Config
	Logger        *slog.Logger
	Books         *handler.BookHandler
	Users         *handler.UserHandler
	Health        *handler.HealthHandler
	LoanFeed      *websocket.Handler        // nil disables /api/loans/feed
	Metrics       *observability.Metrics    // nil disables /metrics
	Authenticator middleware.TokenValidator // nil leaves the API open
}

// NewRouter assembles the gin engine: global middleware first, then probes,
// metrics and docs outside /api, then the API groups.
func NewRouter(rc RouterConfig) *gin.Engine {
	cfg := rc.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(rc.Logger))
	if rc.Metrics != nil {
		r.Use(middleware.Metrics(rc.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	}

	if rc.Health != nil {
		rc.Health.RegisterRoutes(r)
	}
	if rc.Metrics != nil {
		r.GET("/metrics", gin.WrapH(rc.Metrics.Handler()))
	}
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	if rc.Authenticator != nil {
		api.Use(middleware.AuthMiddleware(rc.Authenticator))
	}

	rc.Books.RegisterRoutes(api.Group("/books"))
	rc.Users.RegisterRoutes(api.Group("/users"))
	if rc.LoanFeed != nil {
		rc.LoanFeed.RegisterRoutes(api.Group("/loans"))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	for _, o := range origins {
		if o == "*" {
			// credentials can't be combined with a wildcard origin
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}
