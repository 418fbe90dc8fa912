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

type WishListHandler struct {
	Svc *application.WishListService
}

func NewWishListHandler(svc *application.WishListService) *WishListHandler {
	return &WishListHandler{Svc: svc}
}

type wishEntryDTO struct {
	EntryID int64   `json:"entry_id"`
	Wish    wishDTO `json:"wish"`
}

type wishListDTO struct {
	ID        string         `json:"id"`
	EventName string         `json:"event_name"`
	EventDate time.Time      `json:"event_date"`
	OwnerID   string         `json:"owner_id"`
	Wishes    []wishEntryDTO `json:"wishes"`
	ViewerIDs []string       `json:"viewer_ids"`
	CreatedAt time.Time      `json:"created_at"`
}

func toWishListDTO(wl *entity.WishList) wishListDTO {
	entries := make([]wishEntryDTO, 0, len(wl.Wishes))
	for _, e := range wl.Wishes {
		w := e.Wish
		entries = append(entries, wishEntryDTO{EntryID: e.EntryID, Wish: toWishDTO(&w)})
	}
	viewers := wl.ViewerIDs
	if viewers == nil {
		viewers = []string{}
	}
	return wishListDTO{
		ID:        wl.ID,
		EventName: wl.EventName,
		EventDate: wl.EventDate,
		OwnerID:   wl.OwnerID,
		Wishes:    entries,
		ViewerIDs: viewers,
		CreatedAt: wl.CreatedAt,
	}
}

func toWishListDTOs(wls []*entity.WishList) []wishListDTO {
	out := make([]wishListDTO, 0, len(wls))
	for _, wl := range wls {
		out = append(out, toWishListDTO(wl))
	}
	return out
}

type createWishListRequest struct {
	EventName string    `json:"event_name" binding:"required"`
	EventDate time.Time `json:"event_date" binding:"required"`
}

// Create POST /api/wishlists (auth required)
// Commits the session draft: every staged wish becomes a membership
// entry, in staging order, and the draft is cleared.
func (h *WishListHandler) Create(c *gin.Context) {
	var req createWishListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	wl, err := h.Svc.Create(c.Request.Context(), req.EventName, req.EventDate, c.GetString("accountID"), c.GetString("sessionID"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusCreated, toWishListDTO(wl), "wishlist created", nil)
}

// Get GET /api/wishlists/:id (auth required)
// Owner and viewers only; everyone else gets 403.
func (h *WishListHandler) Get(c *gin.Context) {
	wl, err := h.Svc.Get(c.Request.Context(), c.GetString("accountID"), c.Param("id"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishListDTO(wl), "wishlist", nil)
}

// ListMine GET /api/wishlists (auth required)
func (h *WishListHandler) ListMine(c *gin.Context) {
	wls, err := h.Svc.ListByOwner(c.Request.Context(), c.GetString("accountID"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishListDTOs(wls), "owned wishlists", gin.H{"count": len(wls)})
}

// ListShared GET /api/wishlists/shared-with-me (auth required)
func (h *WishListHandler) ListShared(c *gin.Context) {
	wls, err := h.Svc.ListSharedWith(c.Request.Context(), c.GetString("accountID"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toWishListDTOs(wls), "shared wishlists", gin.H{"count": len(wls)})
}

type addWishRequest struct {
	WishID string `json:"wish_id" binding:"required,uuid"`
}

// AddWish POST /api/wishlists/:id/wishes (auth required, owner only)
// The same wish may appear more than once; each call appends.
func (h *WishListHandler) AddWish(c *gin.Context) {
	var req addWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AddWish(c.Request.Context(), c.GetString("accountID"), c.Param("id"), req.WishID); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "wish added to wishlist", nil)
}

// RemoveWish DELETE /api/wishlists/:id/wishes/:wishID (auth required, owner only)
// Removes one occurrence; absent wishes are a no-op.
func (h *WishListHandler) RemoveWish(c *gin.Context) {
	if err := h.Svc.RemoveWish(c.Request.Context(), c.GetString("accountID"), c.Param("id"), c.Param("wishID")); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "wish removed from wishlist", nil)
}

// Delete DELETE /api/wishlists/:id (auth required, owner only)
// Refused with 409 while the wishlist still has wishes.
func (h *WishListHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("accountID"), c.Param("id")); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "wishlist deleted", nil)
}

type shareRequest struct {
	AccountIDs []string `json:"account_ids" binding:"omitempty,dive,uuid"`
	Usernames  []string `json:"usernames" binding:"omitempty,dive,username"`
	Emails     []string `json:"emails" binding:"omitempty,dive,email"`
}

// Share POST /api/wishlists/:id/share (auth required, owner only)
// Recipients can be addressed by id, username, or email in one call.
// Sharing is idempotent; the owner is never added as a viewer.
func (h *WishListHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if len(req.AccountIDs) == 0 && len(req.Usernames) == 0 && len(req.Emails) == 0 {
		response.Error[any](c, http.StatusBadRequest, "no recipients", nil)
		return
	}
	ctx := c.Request.Context()
	actorID := c.GetString("accountID")
	wishlistID := c.Param("id")
	if len(req.AccountIDs) > 0 {
		if err := h.Svc.Share(ctx, actorID, wishlistID, req.AccountIDs); err != nil {
			response.Error[any](c, statusFor(err), messageFor(err), nil)
			return
		}
	}
	if len(req.Usernames) > 0 {
		if err := h.Svc.ShareByUsernames(ctx, actorID, wishlistID, req.Usernames); err != nil {
			response.Error[any](c, statusFor(err), messageFor(err), nil)
			return
		}
	}
	if len(req.Emails) > 0 {
		if err := h.Svc.ShareByEmails(ctx, actorID, wishlistID, req.Emails); err != nil {
			response.Error[any](c, statusFor(err), messageFor(err), nil)
			return
		}
	}
	response.Success[any](c, http.StatusOK, nil, "wishlist shared", nil)
}

// Unshare DELETE /api/wishlists/:id/share/:accountID (auth required, owner only)
func (h *WishListHandler) Unshare(c *gin.Context) {
	if err := h.Svc.Unshare(c.Request.Context(), c.GetString("accountID"), c.Param("id"), c.Param("accountID")); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "wishlist unshared", nil)
}
