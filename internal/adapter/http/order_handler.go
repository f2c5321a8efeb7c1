package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

type OrderHandler struct {
	list *usecase.ListOrders
}

func NewOrderHandler(list *usecase.ListOrders) *OrderHandler {
	return &OrderHandler{list: list}
}

type orderResp struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail"`
	ProductName string    `json:"productName"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
}

// List returns every order newest-first. GET /api/orders (admin only;
// the gate runs as middleware before this handler).
func (h *OrderHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.list.Execute(ctx)
	if err != nil {
		logging.From(c).Error("list orders", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResp{
			ID:          o.ID,
			UserID:      o.UserID,
			UserEmail:   o.UserEmail,
			ProductName: o.ProductName,
			Amount:      o.Amount,
			Date:        o.Date,
		})
	}
	c.JSON(http.StatusOK, out)
}
