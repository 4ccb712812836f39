package services

import (
	"context"
	"time"

	"fashionstore/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStore persists orders.
//
// UpdateStatus must apply the change atomically and only when the stored
// status is one of from. When the order exists but its status is not in
// from, it returns the current order together with ErrStatusMismatch. When no
// order has the id, it returns ErrOrderNotFound.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus, at time.Time) (*models.Order, error)
}

// EventPublisher delivers order events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	EventID    string             `json:"eventId"`
	Type       string             `json:"type"`
	OrderID    string             `json:"orderId"`
	Status     models.OrderStatus `json:"status"`
	TotalPrice float64            `json:"totalPrice"`
	OccurredAt time.Time          `json:"occurredAt"`
}

func (e OrderEvent) EventType() string { return e.Type }
