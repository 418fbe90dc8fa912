package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raihansp/wishwell/internal/container"
	handlers "github.com/raihansp/wishwell/internal/interface/http"
	"github.com/raihansp/wishwell/internal/interface/middleware"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// AccountModule wires identity routes.
// Public: POST /api/accounts/register, /login, /refresh
// Protected: logout, profile, password change, account search
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public with IP-based rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/accounts/register", registerLimiter, m.Handler.Register)
	rg.POST("/accounts/login", loginLimiter, m.Handler.Login)
	rg.POST("/accounts/refresh", refreshLimiter, m.Handler.Refresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil))
	{
		auth.POST("/accounts/logout", m.Handler.Logout)
		auth.GET("/accounts/me", m.Handler.Profile)
		auth.PUT("/accounts/me/password", m.Handler.ChangePassword)
		// Search accounts via Elasticsearch
		auth.GET("/accounts/search", m.Handler.Search)
	}
}
