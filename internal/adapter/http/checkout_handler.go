package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/http/middleware"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

type CheckoutHandler struct {
	create *usecase.CreateCheckout
}

func NewCheckoutHandler(create *usecase.CreateCheckout) *CheckoutHandler {
	return &CheckoutHandler{create: create}
}

type createCheckoutReq struct {
	ProductID string `json:"productId" binding:"required"`
}

// Create starts a hosted checkout. POST /api/create-checkout-session
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req createCheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	var user *usecase.CheckoutUser
	if id, ok := middleware.Identity(c); ok {
		user = &usecase.CheckoutUser{ID: id.UserID, Email: id.Email}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sessionID, err := h.create.Execute(ctx, user, req.ProductID)
	switch {
	case errors.Is(err, usecase.ErrAuthenticationRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, usecase.ErrUnknownProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
	case err != nil:
		logging.From(c).Error("create checkout session", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout unavailable"})
	default:
		c.JSON(http.StatusOK, gin.H{"id": sessionID})
	}
}
