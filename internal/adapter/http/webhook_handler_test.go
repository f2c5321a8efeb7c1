package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ombhayde/tensorg-payment-system/internal/adapter/payment"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

const webhookSecret = "whsec_test"

// signPayload builds a Stripe-Signature header for the payload:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventID, eventType string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": %q,
		"data": {
			"object": {
				"id": "cs_1",
				"object": "checkout.session",
				"metadata": {
					"userId": "u1",
					"userEmail": "a@x.com",
					"productName": "GenAI Suite",
					"amount": "9900"
				}
			}
		}
	}`, eventID, eventType))
}

func newWebhookRouter(repo *fakeOrderRepo, idem *fakeIdem) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gateway := payment.NewStripeGateway("sk_test", webhookSecret)
	record := usecase.NewRecordOrder(repo, idem, noopNotifier{})
	wh := NewWebhookHandler(gateway, record)

	r := gin.New()
	r.POST("/webhook", wh.Handle)
	return r
}

func postWebhook(r *gin.Engine, payload []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_CompletedCheckoutRecordsOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newWebhookRouter(repo, newFakeIdem())

	payload := eventPayload("evt_1", "checkout.session.completed")
	w := postWebhook(r, payload, signPayload(payload, webhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, repo.count())

	ord := repo.orders[0]
	assert.Equal(t, "u1", ord.UserID)
	assert.Equal(t, "a@x.com", ord.UserEmail)
	assert.Equal(t, "GenAI Suite", ord.ProductName)
	assert.Equal(t, int64(9900), ord.Amount)
	assert.False(t, ord.Date.IsZero())
}

func TestWebhook_BadSignatureRejectedWithoutSideEffects(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newWebhookRouter(repo, newFakeIdem())

	payload := eventPayload("evt_1", "checkout.session.completed")

	cases := map[string]struct {
		payload []byte
		sig     string
	}{
		"missing header":  {payload, ""},
		"wrong secret":    {payload, signPayload(payload, "whsec_other")},
		"mutated body":    {append(payload, ' '), signPayload(payload, webhookSecret)},
		"garbage header":  {payload, "t=0,v1=zz"},
		"replayed header": {eventPayload("evt_2", "checkout.session.completed"), signPayload(payload, webhookSecret)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := postWebhook(r, tc.payload, tc.sig)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, repo.count())
		})
	}
}

func TestWebhook_UnknownEventTypeAcknowledgedWithoutAction(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newWebhookRouter(repo, newFakeIdem())

	payload := eventPayload("evt_1", "payment_intent.created")
	w := postWebhook(r, payload, signPayload(payload, webhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, repo.count())
}

func TestWebhook_RedeliveryIsAcknowledgedOnce(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newWebhookRouter(repo, newFakeIdem())

	payload := eventPayload("evt_1", "checkout.session.completed")

	w := postWebhook(r, payload, signPayload(payload, webhookSecret))
	assert.Equal(t, http.StatusOK, w.Code)

	// At-least-once delivery: the provider may send the same event again.
	w = postWebhook(r, payload, signPayload(payload, webhookSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.count())
}

func TestWebhook_StorageFailureReturns5xxAndRedeliveryRecovers(t *testing.T) {
	repo := &fakeOrderRepo{failErr: fmt.Errorf("mongo down")}
	r := newWebhookRouter(repo, newFakeIdem())

	payload := eventPayload("evt_1", "checkout.session.completed")

	w := postWebhook(r, payload, signPayload(payload, webhookSecret))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, repo.count())

	repo.failErr = nil
	w = postWebhook(r, payload, signPayload(payload, webhookSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.count())
}
