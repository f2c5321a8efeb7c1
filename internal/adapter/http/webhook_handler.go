package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/http/middleware"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

// Stripe caps event payloads well below this; anything larger is garbage.
const maxWebhookBody = 64 * 1024

// EventVerifier authenticates a raw delivery before any of it is trusted.
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (usecase.PaymentEvent, error)
}

// WebhookHandler is the trust boundary between the public internet and order
// creation: verify first, then record, then acknowledge.
type WebhookHandler struct {
	verifier EventVerifier
	record   *usecase.RecordOrder
}

func NewWebhookHandler(verifier EventVerifier, record *usecase.RecordOrder) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, record: record}
}

// Handle processes a provider delivery. POST /webhook
//
// 400 on a bad signature stops nothing on the provider side worth keeping;
// 2xx acknowledges and stops redelivery. A storage failure returns 5xx so the
// provider retries, which is safe because recording is deduplicated by event
// id and the dedup lock is released on failure.
func (h *WebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	ev, err := h.verifier.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logging.From(c).Warn("webhook rejected", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook verification failed"})
		return
	}

	// Forward-compatible no-op for everything but completed checkouts.
	if ev.Type != usecase.EventCheckoutCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.record.Execute(ctx, ev)
	switch {
	case errors.Is(err, usecase.ErrDuplicateEvent):
		logging.From(c).Info("duplicate event acknowledged", "event_id", ev.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
	case err != nil:
		logging.From(c).Error("order recording failed", "event_id", ev.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order recording failed"})
	default:
		middleware.ObserveOrderRecorded()
		logging.From(c).Info("order recorded", "order_id", rec.ID, "event_id", ev.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
