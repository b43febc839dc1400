package v1

import (
	"net/http"
	"time"

	"vericv-backend/config"
	"vericv-backend/internal/delivery/http/middleware"
	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"
	"vericv-backend/internal/usecase"
	"vericv-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	CVUC           domain.CVUsecase
	DirectoryUC    domain.DirectoryUsecase
	VerificationUC domain.VerificationUsecase
	HealthUC       usecase.HealthUsecase
	Tokens         *auth.TokenService
	Redis          *goredis.Client // optional, enables distributed rate limiting
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	origins := append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...)
	r.Use(middleware.CORSMiddleware(origins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	registerLimit := middleware.RateLimitMiddleware(deps.Redis, middleware.AuthRateLimitConfig(window))
	loginLimit := middleware.RateLimitMiddleware(deps.Redis, middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, cfg, registerLimit, loginLimit)
		NewCVHandler(v1, protected, deps.CVUC)
		NewDirectoryHandler(v1, protected, deps.DirectoryUC)
		NewAdminHandler(protected, deps.VerificationUC)
	}

	return r
}
