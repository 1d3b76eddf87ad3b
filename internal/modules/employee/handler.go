package employee

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
	employees := protected.Group("/employee")
	{
		employees.POST("/register", h.Register)
		employees.PUT("/update/:id", h.Update)
		employees.DELETE("/delete/:id", h.Delete)
		employees.GET("/getallemployees", h.GetAll)
		employees.GET("/searchemployees", h.Search)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownDepartment) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_DEPARTMENT", "Department does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register employee")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"employee": e})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
		case errors.Is(err, ErrUnknownDepartment):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_DEPARTMENT", "Department does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update employee")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employee": e})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete employee")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Employee deleted"})
}

func (h *Handler) GetAll(c *gin.Context) {
	employees, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load employees")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employees": employees})
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchEmployeeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	employees, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_CRITERIA", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"employees": employees})
}
