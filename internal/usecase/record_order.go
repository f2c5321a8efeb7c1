package usecase

import (
	"context"
	"errors"
	"time"

	domain "github.com/ombhayde/tensorg-payment-system/internal/entity"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
)

var ErrDuplicateEvent = errors.New("duplicate payment event")

// dedup scope for provider event ids in the idempotency store
const eventScope = "stripe-event"

// RecordOrder turns a verified checkout-completed event into exactly one
// stored order. The provider delivers events at least once, so recording is
// keyed on the event id: repeats surface ErrDuplicateEvent and write nothing.
type RecordOrder struct {
	repo   OrderRepo
	idem   IdempotencyStore
	notify Notifier
	now    func() time.Time
}

func NewRecordOrder(repo OrderRepo, idem IdempotencyStore, notify Notifier) *RecordOrder {
	return &RecordOrder{repo: repo, idem: idem, notify: notify, now: time.Now}
}

func (uc *RecordOrder) Execute(ctx context.Context, ev PaymentEvent) (*OrderRecord, error) {
	// Fast path: event already recorded.
	if _, seen, _ := uc.idem.Recall(ctx, eventScope, ev.ID); seen {
		return nil, ErrDuplicateEvent
	}
	ok, err := uc.idem.TryLock(ctx, eventScope, ev.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateEvent
	}

	ord := domain.Order{
		UserID:      ev.Metadata.UserID,
		UserEmail:   ev.Metadata.UserEmail,
		ProductName: ev.Metadata.ProductName,
		Amount:      ev.Metadata.Amount,
	}
	if err := ord.Validate(); err != nil {
		// A malformed event will never become valid; no point holding the lock.
		_ = uc.idem.Release(ctx, eventScope, ev.ID)
		return nil, err
	}

	rec := &OrderRecord{
		UserID:      ord.UserID,
		UserEmail:   ord.UserEmail,
		ProductName: ord.ProductName,
		Amount:      ord.Amount,
		Date:        uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		// Release the dedup lock so provider redelivery can retry the write.
		_ = uc.idem.Release(ctx, eventScope, ev.ID)
		return nil, err
	}
	_ = uc.idem.Remember(ctx, eventScope, ev.ID, rec.ID)

	// Fire-and-forget: the provider must not wait on a mail send, and a failed
	// notification never rolls back the order.
	l := logging.FromCtx(ctx)
	stored := *rec
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := uc.notify.OrderRecorded(nctx, stored); err != nil {
			l.Error("order notification failed", "order_id", stored.ID, "err", err)
		}
	}()

	return rec, nil
}
