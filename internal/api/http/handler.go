package apiHttp

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/attendly/backend/docs"
	"github.com/attendly/backend/pkg/auth"
	"github.com/attendly/backend/pkg/limiter"
	"github.com/attendly/backend/pkg/logger"
	"github.com/attendly/backend/pkg/validator"

	internalV1 "github.com/attendly/backend/internal/api/http/internal/v1"
	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	cache        redis.UniversalClient
	clientKey    string
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
	cache redis.UniversalClient,
	clientKey string,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
		cache:        cache,
		clientKey:    clientKey,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.HttpServer.CORSDomains),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config, h.cache, h.clientKey)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
