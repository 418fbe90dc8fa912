package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/raihansp/wishwell/internal/application"
	"github.com/raihansp/wishwell/pkg/helpers"
	"github.com/raihansp/wishwell/pkg/response"
	"github.com/raihansp/wishwell/pkg/validation"
)

type AccountHandler struct {
	Svc     *application.AccountService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, cookies *helpers.Manager, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

type accountDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func toAccountDTO(id, email, username string) accountDTO {
	return accountDTO{ID: id, Email: email, Username: username}
}

// Register POST /api/accounts/register
// Both email and username conflicts are reported in one round trip.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), conflictDetails(err))
		return
	}
	response.Success(c, http.StatusCreated, toAccountDTO(a.ID, a.Email, a.Username), "account registered", nil)
}

// conflictDetails lists which unique fields collided so clients can
// correct both in a single retry.
func conflictDetails(err error) map[string]string {
	var merr *multierror.Error
	out := map[string]string{}
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			switch {
			case errors.Is(e, application.ErrDuplicateEmail):
				out["email"] = e.Error()
			case errors.Is(e, application.ErrDuplicateUsername):
				out["username"] = e.Error()
			}
		}
	} else {
		switch {
		case errors.Is(err, application.ErrDuplicateEmail):
			out["email"] = application.ErrDuplicateEmail.Error()
		case errors.Is(err, application.ErrDuplicateUsername):
			out["username"] = application.ErrDuplicateUsername.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/accounts/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	profile, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, profile, "login successful", nil)
}

// Refresh POST /api/accounts/refresh
// Rotates the token pair when the refresh token still matches the
// active Redis session.
func (h *AccountHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, nil, "token refreshed", nil)
}

// Logout POST /api/accounts/logout (auth required)
func (h *AccountHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("accountID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Profile GET /api/accounts/me (auth required)
func (h *AccountHandler) Profile(c *gin.Context) {
	a, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("accountID"))
	if err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success(c, http.StatusOK, toAccountDTO(a.ID, a.Email, a.Username), "profile", nil)
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// ChangePassword PUT /api/accounts/me/password (auth required)
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdatePassword(c.Request.Context(), c.GetString("accountID"), req.NewPassword); err != nil {
		response.Error[any](c, statusFor(err), messageFor(err), nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated", nil)
}

// Search GET /api/accounts/search?q=...&size=10 (auth required)
// Fuzzy lookup over the Elasticsearch index, used to find accounts to
// share a wishlist with.
func (h *AccountHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 50 {
			size = n
		}
	}
	hits, err := h.Svc.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("account search failed")
		}
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
