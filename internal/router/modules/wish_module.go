package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raihansp/wishwell/internal/container"
	handlers "github.com/raihansp/wishwell/internal/interface/http"
	"github.com/raihansp/wishwell/internal/interface/middleware"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// WishModule wires the shared wish catalog routes. All of them
// require an authenticated account.
type WishModule struct {
	Handler *handlers.WishHandler
	JWT     *helpers.JWTManager
}

func NewWishModule(h *handlers.WishHandler, jwt *helpers.JWTManager) *WishModule {
	return &WishModule{Handler: h, JWT: jwt}
}

func (m *WishModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil))
	{
		auth.POST("/wishes", m.Handler.Add)
		auth.GET("/wishes", m.Handler.List)
		auth.GET("/wishes/:id", m.Handler.Get)
		auth.PUT("/wishes/:id", m.Handler.Update)
		auth.DELETE("/wishes/:id", m.Handler.Remove)
	}
}
