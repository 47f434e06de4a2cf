package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"order-service/internal/domain"
	"order-service/internal/infra/rabbitmq"
	"order-service/internal/infra/redis"
	"order-service/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	invalidateAttempts = 3
	invalidateBackoff  = 50 * time.Millisecond
)

// OrderService coordinates the store, the cache and the event queue.
// The store is the source of truth; the cache is a TTL-bounded read
// accelerator invalidated on status writes.
type OrderService struct {
	repo      repository.OrderRepository
	cache     redis.Cache
	publisher rabbitmq.PublisherInterface
	ttl       time.Duration
}

func NewOrderService(r repository.OrderRepository, c redis.Cache, pub rabbitmq.PublisherInterface, ttl time.Duration) *OrderService {
	return &OrderService{
		repo:      r,
		cache:     c,
		publisher: pub,
		ttl:       ttl,
	}
}

// CreateOrder persists a PENDING order and then publishes the new_order
// event. The store write is not rolled back when publishing fails: the
// order stays visible to readers, the error surfaces to the caller.
func (s *OrderService) CreateOrder(ctx context.Context, ownerID uint64, items domain.Items, totalPrice float64) (*domain.Order, error) {
	order := &domain.Order{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Items:      items,
		TotalPrice: totalPrice,
		Status:     domain.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	evt := domain.OrderEvent{Event: domain.EventNewOrder, OrderID: order.ID}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		log.Error().Err(err).Str("order", order.ID).
			Msg("order stored but new_order event lost")
		return nil, fmt.Errorf("publish new_order event: %w", err)
	}

	return order, nil
}

// GetOrder consults the cache first and falls back to the store on a miss,
// filling the cache with the configured TTL. Cache transport failures
// degrade to a direct store read.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	snapshot, err := s.cache.Get(ctx, orderID)
	switch {
	case err == nil:
		var o domain.Order
		if uerr := json.Unmarshal(snapshot, &o); uerr == nil {
			return &o, nil
		}
		// Corrupt entry: drop it and re-read from the store.
		_ = s.cache.Delete(ctx, orderID)
	case !errors.Is(err, redis.ErrCacheMiss):
		log.Warn().Err(err).Str("order", orderID).
			Msg("cache read failed, falling back to store")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if data, merr := json.Marshal(order); merr == nil {
		if cerr := s.cache.Set(ctx, orderID, data, s.ttl); cerr != nil {
			log.Warn().Err(cerr).Str("order", orderID).Msg("cache fill failed")
		}
	}
	return order, nil
}

// UpdateStatus writes the new status to the store and deletes the cache
// entry. The entry is deleted rather than updated in place; the next read
// repopulates it. A failed invalidation is retried and then logged loudly,
// since it risks serving stale data until TTL expiry.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	rows, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}

	var derr error
retry:
	for i := 0; i < invalidateAttempts; i++ {
		if derr = s.cache.Delete(ctx, orderID); derr == nil {
			return nil
		}
		if i == invalidateAttempts-1 {
			break
		}
		select {
		case <-time.After(invalidateBackoff):
		case <-ctx.Done():
			break retry
		}
	}
	log.Error().Err(derr).Str("order", orderID).
		Msg("cache invalidation failed, stale reads possible until TTL expiry")
	return nil
}

// ListOrdersByOwner reads directly from the store; list queries are not
// cached.
func (s *OrderService) ListOrdersByOwner(ctx context.Context, ownerID uint64) ([]domain.Order, error) {
	return s.repo.FindByOwnerID(ctx, ownerID)
}
