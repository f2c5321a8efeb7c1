package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/catalog"
)

type ProductHandler struct {
	products *catalog.Catalog
}

func NewProductHandler(products *catalog.Catalog) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the catalog snapshot. GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.products.List())
}
