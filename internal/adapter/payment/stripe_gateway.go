package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// ErrSignatureInvalid marks an inbound event that failed authentication.
// Nothing past the signature check may be trusted for side effects.
var ErrSignatureInvalid = errors.New("invalid webhook signature")

// StripeGateway is both the Checkout Session Initiator (outbound) and the
// Payment Event Verifier (inbound) for Stripe.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	return &StripeGateway{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

// CreateSession builds a hosted checkout for a single line item. The metadata
// bag is echoed back verbatim in the completion event, which is how the
// recorder later ties the payment to a user and product.
func (g *StripeGateway) CreateSession(ctx context.Context, req usecase.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(req.ProductName),
					Images: stripe.StringSlice([]string{req.ImageURL}),
				},
				UnitAmount: stripe.Int64(req.Amount),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.ID, nil
}

// VerifyEvent authenticates a raw webhook delivery against the endpoint
// secret before any of its content is interpreted. For completed checkouts it
// also decodes the metadata bag; any other event type comes back with just
// the discriminator so callers can acknowledge and drop it.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader string) (usecase.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return usecase.PaymentEvent{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	out := usecase.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type != usecase.EventCheckoutCompleted {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return usecase.PaymentEvent{}, fmt.Errorf("decode checkout session: %w", err)
	}
	md, err := parseMetadata(cs.Metadata)
	if err != nil {
		return usecase.PaymentEvent{}, err
	}
	out.Metadata = md
	return out, nil
}

func parseMetadata(md map[string]string) (usecase.EventMetadata, error) {
	amount, err := strconv.ParseInt(md["amount"], 10, 64)
	if err != nil {
		return usecase.EventMetadata{}, fmt.Errorf("bad amount metadata %q", md["amount"])
	}
	if amount < 0 {
		return usecase.EventMetadata{}, fmt.Errorf("negative amount metadata %d", amount)
	}
	return usecase.EventMetadata{
		UserID:      md["userId"],
		UserEmail:   md["userEmail"],
		ProductName: md["productName"],
		Amount:      amount,
	}, nil
}

var _ usecase.CheckoutGateway = (*StripeGateway)(nil)
