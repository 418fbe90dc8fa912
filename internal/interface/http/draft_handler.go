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

// DraftHandler exposes the session-scoped staging area. Staged wishes
// are copies; nothing here touches catalog or wishlist state until
// the wishlist is created.
type DraftHandler struct {
	Svc *application.DraftService
}

func NewDraftHandler(svc *application.DraftService) *DraftHandler {
	return &DraftHandler{Svc: svc}
}

type draftWishDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

func toDraftDTOs(ds []entity.DraftWish) []draftWishDTO {
	out := make([]draftWishDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, draftWishDTO{Name: d.Name, Description: d.Description, AddedAt: d.AddedAt})
	}
	return out
}

type stageExistingRequest struct {
	WishID string `json:"wish_id" binding:"required,uuid"`
}

// StageExisting POST /api/drafts/wishes (auth required)
// Stages a copy of a catalog wish. Staging the same wish twice yields
// two entries.
func (h *DraftHandler) StageExisting(c *gin.Context) {
	var req stageExistingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.StageExisting(c.Request.Context(), c.GetString("sessionID"), req.WishID)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusCreated, draftWishDTO(d), "wish staged", nil)
}

type stageNewRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"wishdesc"`
}

// StageNew POST /api/drafts/wishes/new (auth required)
// Stages an ad-hoc wish that does not exist in the catalog yet; it is
// materialized there when the wishlist is created.
func (h *DraftHandler) StageNew(c *gin.Context) {
	var req stageNewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.StageNew(c.Request.Context(), c.GetString("sessionID"), req.Name, req.Description)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusCreated, draftWishDTO(d), "wish staged", nil)
}

// List GET /api/drafts/wishes (auth required)
func (h *DraftHandler) List(c *gin.Context) {
	ds, err := h.Svc.List(c.Request.Context(), c.GetString("sessionID"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toDraftDTOs(ds), "staged wishes", gin.H{"count": len(ds)})
}

// Clear DELETE /api/drafts/wishes (auth required)
func (h *DraftHandler) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), c.GetString("sessionID")); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "draft cleared", nil)
}
