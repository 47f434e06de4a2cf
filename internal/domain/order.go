package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending  OrderStatus = "PENDING"
	StatusPaid     OrderStatus = "PAID"
	StatusShipped  OrderStatus = "SHIPPED"
	StatusCanceled OrderStatus = "CANCELED"
)

// ParseStatus validates a raw status value against the enum.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusPaid, StatusShipped, StatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Items is the ordered list of line items, persisted as a JSON column.
type Items []map[string]string

func (i Items) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

func (i *Items) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = nil
		return nil
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	}
	return fmt.Errorf("unsupported items column type %T", src)
}

type Order struct {
	ID         string      `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID    uint64      `json:"owner_id" gorm:"not null;index"`
	Items      Items       `json:"items" gorm:"type:json;not null"`
	TotalPrice float64     `json:"total_price" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:enum('PENDING','PAID','SHIPPED','CANCELED');default:'PENDING'"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
}
