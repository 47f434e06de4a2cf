package domain

const EventNewOrder = "new_order"

// OrderEvent is the queue wire format for order notifications.
type OrderEvent struct {
	Event   string `json:"event"`
	OrderID string `json:"order_id"`
}
