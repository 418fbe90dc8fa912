package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raihansp/wishwell/internal/container"
	handlers "github.com/raihansp/wishwell/internal/interface/http"
	"github.com/raihansp/wishwell/internal/interface/middleware"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// WishListModule wires wishlist lifecycle, sharing, and the draft
// staging area. Everything here requires an authenticated account;
// per-wishlist access control happens in the service layer.
type WishListModule struct {
	Handler *handlers.WishListHandler
	Drafts  *handlers.DraftHandler
	JWT     *helpers.JWTManager
}

func NewWishListModule(h *handlers.WishListHandler, d *handlers.DraftHandler, jwt *helpers.JWTManager) *WishListModule {
	return &WishListModule{Handler: h, Drafts: d, JWT: jwt}
}

func (m *WishListModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil))
	{
		// Draft staging (session scoped)
		auth.POST("/drafts/wishes", m.Drafts.StageExisting)
		auth.POST("/drafts/wishes/new", m.Drafts.StageNew)
		auth.GET("/drafts/wishes", m.Drafts.List)
		auth.DELETE("/drafts/wishes", m.Drafts.Clear)

		// Wishlist lifecycle
		auth.POST("/wishlists", m.Handler.Create)
		auth.GET("/wishlists", m.Handler.ListMine)
		auth.GET("/wishlists/shared-with-me", m.Handler.ListShared)
		auth.GET("/wishlists/:id", m.Handler.Get)
		auth.DELETE("/wishlists/:id", m.Handler.Delete)

		// Membership
		auth.POST("/wishlists/:id/wishes", m.Handler.AddWish)
		auth.DELETE("/wishlists/:id/wishes/:wishID", m.Handler.RemoveWish)

		// Sharing
		auth.POST("/wishlists/:id/share", m.Handler.Share)
		auth.DELETE("/wishlists/:id/share/:accountID", m.Handler.Unshare)
	}
}
