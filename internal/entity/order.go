package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingUser   = errors.New("missing user reference")
)

// Order is a completed purchase. Orders are append-only: created once by the
// webhook recording path and never updated or deleted afterwards.
type Order struct {
	ID          string
	UserID      string
	UserEmail   string
	ProductName string
	Amount      int64 // minor currency units (paise)
	Date        time.Time
}

func (o *Order) Validate() error {
	if o.Amount < 0 {
		return ErrInvalidAmount
	}
	if o.UserID == "" {
		return ErrMissingUser
	}
	return nil
}
