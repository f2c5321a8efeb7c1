package usecase

import (
	"context"
	"sort"
	"sync"
)

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  []OrderRecord
	nextID  int
	failErr error
}

func (r *fakeOrderRepo) Create(_ context.Context, o *OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	o.ID = string(rune('a' + r.nextID - 1))
	r.orders = append(r.orders, *o)
	return nil
}

func (r *fakeOrderRepo) ListNewestFirst(_ context.Context) ([]OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]OrderRecord, len(r.orders))
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
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locks: map[string]bool{}, values: map[string]string{}}
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
	s.values[scope+":"+key] = value
	return nil
}

func (s *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type fakeNotifier struct {
	sent chan OrderRecord
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan OrderRecord, 8)}
}

func (n *fakeNotifier) OrderRecorded(_ context.Context, o OrderRecord) error {
	n.sent <- o
	return n.err
}

type fakeGateway struct {
	mu       sync.Mutex
	requests []CheckoutRequest
	id       string
	err      error
}

func (g *fakeGateway) CreateSession(_ context.Context, req CheckoutRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.id, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []UserRecord
	nextID int
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].GoogleID == googleID {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = string(rune('0' + r.nextID))
	r.users = append(r.users, *u)
	return nil
}
