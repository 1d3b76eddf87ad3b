package department

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	departments := protected.Group("/department")
	{
		departments.POST("/register", h.Register)
		departments.PUT("/update/:id", h.Update)
		departments.DELETE("/delete/:id", h.Delete)
		departments.GET("/getalldepartments", h.GetAll)
		departments.GET("/searchdepartments", h.Search)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register department")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"department": d})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "Department not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update department")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": d})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "DEPARTMENT_NOT_FOUND", "Department not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete department")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Department deleted"})
}

func (h *Handler) GetAll(c *gin.Context) {
	departments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load departments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchDepartmentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	departments, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search departments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}
