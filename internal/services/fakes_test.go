package services

import (
	"context"
	"sync"
	"time"

	"order-service/internal/domain"
	"order-service/internal/infra/redis"
)

// In-memory fakes for the stateful consistency scenarios. Safe for
// concurrent use.

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]domain.Order
	finds  int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]domain.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) FindByOwnerID(_ context.Context, ownerID uint64) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return 0, nil
	}
	o.Status = status
	r.orders[id] = o
	return 1, nil
}

func (r *memOrderRepo) findCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finds
}

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, orderID string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[orderID]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return data, nil
}

func (c *memCache) Set(_ context.Context, orderID string, snapshot []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[orderID] = snapshot
	return nil
}

func (c *memCache) Delete(_ context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, orderID)
	return nil
}
