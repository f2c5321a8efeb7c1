package usecase

import "context"

// ListOrders is the admin reporting read path. Authorization is a handler
// precondition; by the time Execute runs the caller is already admin-gated.
type ListOrders struct {
	repo OrderRepo
}

func NewListOrders(repo OrderRepo) *ListOrders {
	return &ListOrders{repo: repo}
}

// Execute returns a snapshot of all orders, most recent first.
func (uc *ListOrders) Execute(ctx context.Context) ([]OrderRecord, error) {
	return uc.repo.ListNewestFirst(ctx)
}
