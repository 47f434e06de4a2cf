package http

import "order-service/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UserResponse struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type CreateOrderRequest struct {
	Items      domain.Items `json:"items" binding:"required"`
	TotalPrice float64      `json:"total_price" binding:"min=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
