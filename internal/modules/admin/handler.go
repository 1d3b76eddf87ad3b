package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	users := adminGroup.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/roles", h.ListRoles)
		users.GET("/:userId/role", h.GetUserRole)
		users.POST("/:userId/role", h.UpdateUserRole)
		users.POST("/:userId/change-password", h.ResetPassword)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load roles")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roles": roles})
}

func (h *Handler) GetUserRole(c *gin.Context) {
	summary, err := h.service.GetUserRole(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ROLE_LOOKUP_FAILED", "Failed to load user role")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": summary})
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	summary, err := h.service.UpdateUserRole(c.Request.Context(), c.Param("userId"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, ErrUnknownRole):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_ROLE", "Role does not exist")
		case errors.Is(err, ErrAdminReclassify):
			response.Error(c, http.StatusForbidden, "ADMIN_PROTECTED", "Admin accounts cannot be reclassified")
		default:
			response.Error(c, http.StatusInternalServerError, "ROLE_UPDATE_FAILED", "Failed to update role")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": summary})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("userId"), req.NewPassword); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset password")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password reset"})
}
