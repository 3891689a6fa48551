package kafka

import "time"

// ProductCreatedEvent is published when a new product enters the catalog.
type ProductCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	CreatedBy uint      `json:"created_by"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductDeletedEvent is published when a product is removed from the
// catalog. Consumers use it to prune favorite references.
type ProductDeletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	DeletedBy uint      `json:"deleted_by"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated = "product.created"
	EventTypeProductDeleted = "product.deleted"
)

// Kafka topics
const (
	TopicProductLifecycle = "product-lifecycle"
)
