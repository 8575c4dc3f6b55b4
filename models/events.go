package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderPlacedEvent is published to Kafka after a checkout commits.
type OrderPlacedEvent struct {
	Event      string            `json:"event"` // "order.placed"
	BatchID    uuid.UUID         `json:"batch_id"`
	UserID     uuid.UUID         `json:"user_id"`
	Items      []OrderPlacedItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	Timestamp  time.Time         `json:"timestamp"`
}

type OrderPlacedItem struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}
