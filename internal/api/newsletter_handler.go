package api

import (
	"errors"
	"net/http"

	"ecotrade/internal/service/newsletter"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletter *newsletter.Service
}

func NewNewsletterHandler(newsletterService *newsletter.Service) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletterService}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email is required"})
		return
	}

	sub, already, err := h.newsletter.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, newsletter.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "You are already subscribed", "subscriber": sub})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscribed to the newsletter", "subscriber": sub})
}
