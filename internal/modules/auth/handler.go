package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/config"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/response"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
)

const refreshCookiePath = "/api/account/refresh"

// Handler manages all HTTP interactions for accounts and sessions.
type Handler struct {
	service *Service
	cfg     *config.Config
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	account := api.Group("/account")
	{
		account.POST("/register", h.Register)
		account.POST("/login", h.Login)
		account.POST("/logout", h.Logout)
		account.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	account := protected.Group("/account")
	{
		account.GET("/me", h.GetMe)
		account.POST("/change-password", h.ChangePassword)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserNameTaken) {
			response.Error(c, http.StatusConflict, "USERNAME_TAKEN", "This user name is already taken")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserResponse{ID: user.ID, UserName: user.UserName, Roles: []string{domain.RoleMember}},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "User name or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, gin.H{
		"user": UserResponse{ID: session.User.ID, UserName: session.User.UserName, Roles: session.Roles},
	})
}

// Refresh rotates the session. Any validation failure answers with the same
// 401 body; before answering, the presented token's slot is revoked
// best-effort and both cookies are deleted so the client falls back to a
// clean login.
func (h *Handler) Refresh(c *gin.Context) {
	presented, err := c.Cookie(h.cfg.RefreshCookieName)
	if err != nil || presented == "" {
		h.clearSessionCookies(c)
		response.Error(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is no longer valid")
		return
	}

	session, err := h.service.Refresh(c.Request.Context(), presented)
	if err != nil {
		if errors.Is(err, tokens.ErrInvalidSession) || errors.Is(err, ErrInvalidCredentials) {
			if userID, ok := OwnerOf(presented); ok {
				_ = h.service.refresh.Revoke(c.Request.Context(), userID)
			}
			h.clearSessionCookies(c)
			response.Error(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is no longer valid")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	h.setSessionCookies(c, session)
	response.Success(c, http.StatusOK, gin.H{
		"user": UserResponse{ID: session.User.ID, UserName: session.User.UserName, Roles: session.Roles},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if presented, err := c.Cookie(h.cfg.RefreshCookieName); err == nil && presented != "" {
		if err := h.service.Logout(c.Request.Context(), presented); err != nil {
			response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
			return
		}
	}

	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	user, roles, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserResponse{ID: user.ID, UserName: user.UserName, Roles: roles},
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "CHANGE_PASSWORD_FAILED", "Failed to change password")
		}
		return
	}

	// Old refresh tokens are revoked with the password change; force the
	// client to log in again.
	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *Handler) setSessionCookies(c *gin.Context, s *Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessCookieName, s.AccessToken, int(h.cfg.AccessTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)

	// The refresh cookie is scoped to the refresh endpoint so it never rides
	// along on ordinary API calls.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshCookieName, s.RefreshToken, int(h.cfg.RefreshTTL.Seconds()), refreshCookiePath, "", h.cfg.CookieSecure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.AccessCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshCookieName, "", -1, refreshCookiePath, "", h.cfg.CookieSecure, true)
}
