package v1

import (
	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/service"
	"github.com/attendly/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Attendly Backend API
// @version 1.0
// @description Attendance and wallet backend API

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	cache        redis.UniversalClient
	clientKey    string
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
	cache redis.UniversalClient,
	clientKey string,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
		cache:        cache,
		clientKey:    clientKey,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	if h.config.Signature.Enabled {
		v1.Use(h.signatureMiddleware)
	}

	h.initAuthRoutes(v1)
	h.initUsersRoutes(v1)
	h.initStaffRoutes(v1)
	h.initAdminRoutes(v1)
}
