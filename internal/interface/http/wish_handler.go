package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raihansp/wishwell/internal/application"
	"github.com/raihansp/wishwell/internal/domain/entity"
	"github.com/raihansp/wishwell/pkg/response"
	"github.com/raihansp/wishwell/pkg/validation"
)

type WishHandler struct {
	Svc *application.WishService
}

func NewWishHandler(svc *application.WishService) *WishHandler {
	return &WishHandler{Svc: svc}
}

type wishRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"wishdesc"`
}

type wishDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

func toWishDTO(w *entity.Wish) wishDTO {
	return wishDTO{ID: w.ID, Name: w.Name, Description: w.Description, AddedAt: w.AddedAt}
}

func toWishDTOs(ws []*entity.Wish) []wishDTO {
	out := make([]wishDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWishDTO(w))
	}
	return out
}

// Add POST /api/wishes (auth required)
func (h *WishHandler) Add(c *gin.Context) {
	var req wishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Add(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusCreated, toWishDTO(w), "wish added", nil)
}

// List GET /api/wishes (auth required)
func (h *WishHandler) List(c *gin.Context) {
	ws, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishDTOs(ws), "wish catalog", gin.H{"count": len(ws)})
}

// Get GET /api/wishes/:id (auth required)
func (h *WishHandler) Get(c *gin.Context) {
	w, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishDTO(w), "wish", nil)
}

// Update PUT /api/wishes/:id (auth required)
// Identity and AddedAt never change; edits are visible in every
// wishlist referencing the entry.
func (h *WishHandler) Update(c *gin.Context) {
	var req wishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishDTO(w), "wish updated", nil)
}

// Remove DELETE /api/wishes/:id (auth required)
// Refused with 409 while any wishlist still references the wish.
func (h *WishHandler) Remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "wish removed", nil)
}
