package repository

import (
	"context"
	"fmt"

	"mini-inventory/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const schema = `
	CREATE TABLE IF NOT EXISTS inventory_events (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL,
		product_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		quantity_before INTEGER NOT NULL CHECK (quantity_before >= 0),
		quantity_after INTEGER NOT NULL CHECK (quantity_after >= 0),
		occurred_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_inventory_events_occurred_at ON inventory_events(occurred_at DESC);
	CREATE INDEX IF NOT EXISTS idx_inventory_events_product_id ON inventory_events(product_id);
`

// eventRepository implements the EventRepository interface using PostgreSQL.
type eventRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEventRepository creates a new PostgreSQL-backed event repository.
func NewEventRepository(pool *pgxpool.Pool, logger zerolog.Logger) EventRepository {
	return &eventRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "event").Logger(),
	}
}

// EnsureSchema creates the journal table and indexes if they do not exist.
func (r *eventRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create journal schema")
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// AppendBatch inserts events in a single transaction.
func (r *eventRepository) AppendBatch(ctx context.Context, events []model.Event) (err error) {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO inventory_events (id, type, product_id, name, quantity_before, quantity_after, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(query, e.ID, string(e.Type), e.ProductID, e.Name, e.QuantityBefore, e.QuantityAfter, e.OccurredAt)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(events); i++ {
		if _, err = results.Exec(); err != nil {
			_ = results.Close()
			r.logger.Error().
				Err(err).
				Str("event_id", events[i].ID.String()).
				Str("type", string(events[i].Type)).
				Msg("failed to insert event")
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to close batch results")
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit events: %w", err)
	}

	r.logger.Debug().
		Int("count", len(events)).
		Msg("events appended successfully")

	return nil
}

// Recent returns up to limit events, newest first.
func (r *eventRepository) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	query := `
		SELECT id, type, product_id, name, quantity_before, quantity_after, occurred_at
		FROM inventory_events
		ORDER BY occurred_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query events")
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return r.scanEvents(rows)
}

// ByProduct returns up to limit events for one product, newest first.
func (r *eventRepository) ByProduct(ctx context.Context, productID string, limit int) ([]model.Event, error) {
	query := `
		SELECT id, type, product_id, name, quantity_before, quantity_after, occurred_at
		FROM inventory_events
		WHERE product_id = $1
		ORDER BY occurred_at DESC, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, productID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query product events")
		return nil, fmt.Errorf("failed to query product events: %w", err)
	}
	return r.scanEvents(rows)
}

func (r *eventRepository) scanEvents(rows pgx.Rows) ([]model.Event, error) {
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		var eventType string
		err := rows.Scan(&e.ID, &eventType, &e.ProductID, &e.Name, &e.QuantityBefore, &e.QuantityAfter, &e.OccurredAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan event row")
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = model.EventType(eventType)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating event rows")
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
