package usecase

import (
	"context"
	"time"
)

// Persistence shapes (kept out of domain).
type OrderRecord struct {
	ID          string
	UserID      string
	UserEmail   string
	ProductName string
	Amount      int64
	Date        time.Time
}

type UserRecord struct {
	ID          string
	GoogleID    string
	DisplayName string
	Email       string
	IsAdmin     bool
}

type OrderRepo interface {
	// Create inserts the record and fills in its generated id.
	Create(ctx context.Context, o *OrderRecord) error
	// ListNewestFirst returns every order sorted by date, most recent first.
	ListNewestFirst(ctx context.Context) ([]OrderRecord, error)
}

type UserRepo interface {
	// FindByGoogleID returns (nil, nil) when no user exists for the subject.
	FindByGoogleID(ctx context.Context, googleID string) (*UserRecord, error)
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	// Create inserts the record and fills in its generated id.
	Create(ctx context.Context, u *UserRecord) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// Notifier is a best-effort side channel; failures never affect recording.
type Notifier interface {
	OrderRecorded(ctx context.Context, o OrderRecord) error
}

// CheckoutRequest is the payload handed to the hosted payment provider.
// Metadata is echoed back verbatim in the completion event.
type CheckoutRequest struct {
	Currency    string
	ProductName string
	ImageURL    string
	Amount      int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type CheckoutGateway interface {
	// CreateSession returns the opaque hosted-checkout session id.
	CreateSession(ctx context.Context, req CheckoutRequest) (string, error)
}
