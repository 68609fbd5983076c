package api

import (
	"errors"
	"net/http"
	"strconv"

	"ecotrade/internal/service/wishlist"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlist *wishlist.Service
}

func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlistService}
}

// GetWishlist handles GET /api/wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	items, err := h.wishlist.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": items})
}

// AddToWishlist handles POST /api/wishlist/add
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "productId is required"})
		return
	}

	if err := h.wishlist.Add(c.Request.Context(), userID, req.ProductID); err != nil {
		if errors.Is(err, wishlist.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to wishlist"})
}

// ToggleWishlist handles POST /api/wishlist/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "productId is required"})
		return
	}

	added, err := h.wishlist.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		if errors.Is(err, wishlist.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "added": added, "message": message})
}

// RemoveFromWishlist handles DELETE /api/wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), userID, productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist"})
}
