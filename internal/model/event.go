package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a change applied to the inventory.
type EventType string

const (
	EventProductAdded    EventType = "product.added"
	EventProductUpdated  EventType = "product.updated"
	EventProductDeleted  EventType = "product.deleted"
	EventQuantityChanged EventType = "product.quantity_changed"
	EventEditSelected    EventType = "edit.selected"
	EventEditCancelled   EventType = "edit.cancelled"
)

// Event records one inventory change.
type Event struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Type           EventType `json:"type" db:"type"`
	ProductID      string    `json:"productId,omitempty" db:"product_id"`
	Name           string    `json:"name,omitempty" db:"name"`
	QuantityBefore int       `json:"quantityBefore" db:"quantity_before"`
	QuantityAfter  int       `json:"quantityAfter" db:"quantity_after"`
	OccurredAt     time.Time `json:"occurredAt" db:"occurred_at"`
}

// StockReport summarises stock levels across the inventory.
type StockReport struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Threshold   int                `json:"threshold"`
	Products    int                `json:"products"`
	Units       int                `json:"units"`
	Levels      map[StockLevel]int `json:"levels"`
	OutOfStock  []Product          `json:"outOfStock"`
	LowStock    []Product          `json:"lowStock"`
	Editing     *Product           `json:"editing,omitempty"`
}
