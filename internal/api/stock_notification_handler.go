package api

import (
	"context"
	"errors"
	"net/http"

	"ecotrade/internal/model"
	"ecotrade/internal/service/stocknotify"

	"github.com/gin-gonic/gin"
)

type StockNotifier interface {
	RequestNotification(ctx context.Context, productID int64, email string) (*model.StockNotification, bool, error)
}

type StockNotificationHandler struct {
	notifier StockNotifier
}

func NewStockNotificationHandler(notifier StockNotifier) *StockNotificationHandler {
	return &StockNotificationHandler{notifier: notifier}
}

// RequestNotification handles POST /api/stock-notifications/request
func (h *StockNotificationHandler) RequestNotification(c *gin.Context) {
	var req struct {
		ProductID int64  `json:"productId"`
		Email     string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID and email are required"})
		return
	}

	notification, already, err := h.notifier.RequestNotification(c.Request.Context(), req.ProductID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, stocknotify.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, stocknotify.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		case errors.Is(err, stocknotify.ErrInStock):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product is currently in stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	if already {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "You are already subscribed to notifications for this product",
			"notification": notification,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "You will be notified when this product is back in stock",
		"notification": notification,
	})
}
