package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ombhayde/tensorg-payment-system/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{ID: "prod_3", Name: "GenAI Suite", Price: 9900, Image: "https://img.example/genai.png"},
	})
}

func testURLs() CheckoutURLs {
	return CheckoutURLs{
		Currency:   "inr",
		SuccessURL: "https://shop.example/success",
		CancelURL:  "https://shop.example/cancel",
	}
}

func TestCreateCheckout_RequiresAuthentication(t *testing.T) {
	gw := &fakeGateway{id: "cs_1"}
	uc := NewCreateCheckout(gw, testCatalog(), testURLs())

	for _, user := range []*CheckoutUser{nil, {}} {
		_, err := uc.Execute(context.Background(), user, "prod_3")
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	}
	assert.Empty(t, gw.requests, "no external request without a user")
}

func TestCreateCheckout_UnknownProduct(t *testing.T) {
	gw := &fakeGateway{id: "cs_1"}
	uc := NewCreateCheckout(gw, testCatalog(), testURLs())

	_, err := uc.Execute(context.Background(), &CheckoutUser{ID: "u1", Email: "a@x.com"}, "prod_404")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, gw.requests)
}

func TestCreateCheckout_BuildsRequestFromCatalogPrice(t *testing.T) {
	gw := &fakeGateway{id: "cs_1"}
	uc := NewCreateCheckout(gw, testCatalog(), testURLs())

	id, err := uc.Execute(context.Background(), &CheckoutUser{ID: "u1", Email: "a@x.com"}, "prod_3")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", id)

	require.Len(t, gw.requests, 1)
	req := gw.requests[0]
	assert.Equal(t, "inr", req.Currency)
	assert.Equal(t, "GenAI Suite", req.ProductName)
	assert.Equal(t, int64(9900), req.Amount)
	assert.Equal(t, "https://shop.example/success", req.SuccessURL)
	assert.Equal(t, "https://shop.example/cancel", req.CancelURL)

	// The metadata bag is what comes back verbatim in the payment event.
	assert.Equal(t, map[string]string{
		"userId":      "u1",
		"userEmail":   "a@x.com",
		"productName": "GenAI Suite",
		"amount":      "9900",
	}, req.Metadata)
}
