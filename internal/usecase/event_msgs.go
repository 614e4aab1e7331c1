package usecase

import "time"

// Published on the order.events exchange.
type OrderPlacedMsg struct {
	OrderID    string    `json:"orderId"`
	MemberID   string    `json:"memberId"`
	TotalPrice int64     `json:"totalPrice"`
	PlacedAt   time.Time `json:"placedAt"`
}

type OrderCancelledMsg struct {
	OrderID     string    `json:"orderId"`
	MemberID    string    `json:"memberId"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// Sent by the shipping provider on Kafka.
type DeliveryStatusChangedMsg struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"` // e.g. "SHIPPED", "DELIVERED"
	UpdatedAt time.Time `json:"updatedAt"`
}
