package router

import "github.com/gin-gonic/gin"

// Module is one feature's route bundle (accounts, wishes, wishlists,
// debug). Each module registers its own handlers and per-route
// middleware on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
