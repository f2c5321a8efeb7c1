package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/ombhayde/tensorg-payment-system/internal/catalog"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrUnknownProduct         = errors.New("unknown product")
)

// CheckoutUser is the resolved session identity initiating a checkout.
type CheckoutUser struct {
	ID    string
	Email string
}

// CheckoutURLs bundles the static pieces of every hosted-checkout request.
type CheckoutURLs struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// CreateCheckout builds a hosted-checkout session for a catalog product.
// The product is resolved server-side by id so the charged amount always
// equals the listed price, regardless of what the client sends.
type CreateCheckout struct {
	gateway  CheckoutGateway
	products *catalog.Catalog
	urls     CheckoutURLs
}

func NewCreateCheckout(gateway CheckoutGateway, products *catalog.Catalog, urls CheckoutURLs) *CreateCheckout {
	return &CreateCheckout{gateway: gateway, products: products, urls: urls}
}

// Execute returns the opaque session id for the client to redirect through.
// No state is persisted locally; everything lives with the provider until the
// completion event arrives carrying the metadata bag back.
func (uc *CreateCheckout) Execute(ctx context.Context, user *CheckoutUser, productID string) (string, error) {
	if user == nil || user.ID == "" {
		return "", ErrAuthenticationRequired
	}
	p, ok := uc.products.Get(productID)
	if !ok {
		return "", ErrUnknownProduct
	}

	return uc.gateway.CreateSession(ctx, CheckoutRequest{
		Currency:    uc.urls.Currency,
		ProductName: p.Name,
		ImageURL:    p.Image,
		Amount:      p.Price,
		SuccessURL:  uc.urls.SuccessURL,
		CancelURL:   uc.urls.CancelURL,
		Metadata: map[string]string{
			"userId":      user.ID,
			"userEmail":   user.Email,
			"productName": p.Name,
			"amount":      strconv.FormatInt(p.Price, 10),
		},
	})
}
