package api

import (
	"errors"
	"net/http"

	"ecotrade/internal/service/servicereq"

	"github.com/gin-gonic/gin"
)

type ServiceRequestHandler struct {
	requests *servicereq.Service
}

func NewServiceRequestHandler(requestService *servicereq.Service) *ServiceRequestHandler {
	return &ServiceRequestHandler{requests: requestService}
}

// Create handles POST /api/service-requests
func (h *ServiceRequestHandler) Create(c *gin.Context) {
	var req struct {
		Type        string `json:"type"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	created, err := h.requests.Create(c.Request.Context(), req.Type, req.Name, req.Email, req.Phone, req.Description)
	if err != nil {
		if errors.Is(err, servicereq.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "request": created})
}

// Get handles GET /api/service-requests/:id
func (h *ServiceRequestHandler) Get(c *gin.Context) {
	req, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, servicereq.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": req})
}

// List handles GET /api/service-requests (admin)
func (h *ServiceRequestHandler) List(c *gin.Context) {
	reqs, err := h.requests.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requests": reqs})
}

// UpdateStatus handles PATCH /api/service-requests/:id/status (admin)
func (h *ServiceRequestHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required"})
		return
	}

	updated, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, servicereq.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service request not found"})
		case errors.Is(err, servicereq.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": updated})
}
