package usecase

// EventCheckoutCompleted is the only provider event type that creates orders.
// Everything else is acknowledged and dropped.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a signature-verified provider notification. It is transient:
// its metadata is the sole input to order creation and is never persisted as
// its own entity.
type PaymentEvent struct {
	ID       string
	Type     string
	Metadata EventMetadata
}

// EventMetadata carries the bag attached at checkout-session creation,
// echoed back verbatim by the provider.
type EventMetadata struct {
	UserID      string
	UserEmail   string
	ProductName string
	Amount      int64
}
