package repository

import (
	"context"
	"errors"

	"order-service/internal/domain"
)

var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	// Create returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
}
