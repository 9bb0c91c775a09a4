package repository

import (
	"context"

	"mini-inventory/internal/model"
)

// EventRepository defines the data access operations of the activity journal.
type EventRepository interface {
	// EnsureSchema creates the journal table and indexes if they do not exist.
	EnsureSchema(ctx context.Context) error

	// AppendBatch inserts events in a single transaction.
	AppendBatch(ctx context.Context, events []model.Event) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]model.Event, error)

	// ByProduct returns up to limit events for one product, newest first.
	ByProduct(ctx context.Context, productID string, limit int) ([]model.Event, error)
}
