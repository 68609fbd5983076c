package api

import (
	"errors"
	"net/http"
	"strconv"

	"ecotrade/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogService}
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// UpdateStock handles PUT /api/products/:id/stock (admin)
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product id"})
		return
	}

	var req struct {
		Stock *int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "stock is required"})
		return
	}

	product, err := h.catalog.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		case errors.Is(err, catalog.ErrInvalidStock):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
