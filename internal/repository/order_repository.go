package repository

import (
	"context"

	"order-service/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindByID returns (nil, nil) when no order matches.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOwnerID(ctx context.Context, ownerID uint64) ([]domain.Order, error)
	// UpdateStatus returns the number of rows matched.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (int64, error)
}
