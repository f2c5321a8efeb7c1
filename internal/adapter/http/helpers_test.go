package http

import (
	"context"
	"sort"
	"sync"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
)

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  []usecase.OrderRecord
	listed  int
	failErr error
}

func (r *fakeOrderRepo) Create(_ context.Context, o *usecase.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	o.ID = "ord_" + string(rune('1'+len(r.orders)))
	r.orders = append(r.orders, *o)
	return nil
}

func (r *fakeOrderRepo) ListNewestFirst(_ context.Context) ([]usecase.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed++
	out := make([]usecase.OrderRecord, len(r.orders))
	copy(out, r.orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeIdem struct {
	mu    sync.Mutex
	locks map[string]bool
	seen  map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locks: map[string]bool{}, seen: map[string]string{}}
}

func (s *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[scope+":"+key] {
		return false, nil
	}
	s.locks[scope+":"+key] = true
	return true, nil
}

func (s *fakeIdem) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[scope+":"+key] = value
	return nil
}

func (s *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.seen[scope+":"+key]
	return v, ok, nil
}

type noopNotifier struct{}

func (noopNotifier) OrderRecorded(context.Context, usecase.OrderRecord) error { return nil }

type fakeGateway struct {
	mu       sync.Mutex
	requests []usecase.CheckoutRequest
	id       string
	err      error
}

func (g *fakeGateway) CreateSession(_ context.Context, req usecase.CheckoutRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.id, nil
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}
