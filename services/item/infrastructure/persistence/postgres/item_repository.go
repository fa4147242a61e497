// Package postgres is the PostgreSQL ItemRepository adapter.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/events"
	itemdomain "github.com/ghuser/menagerist/services/item/domain"
	domainevents "github.com/ghuser/menagerist/services/item/domain/events"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

const (
	upsertItemSQL = `INSERT INTO items (id, name, description)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description
RETURNING (xmax = 0) AS inserted`

	getItemSQL = `SELECT id, name, description FROM items WHERE id = $1`

	listItemsSQL = `SELECT id, name, description FROM items ORDER BY id`

	deleteItemSQL = `DELETE FROM items WHERE id = $1 RETURNING id, name, description`
)

// pgCheckViolation is the SQLSTATE for a CHECK constraint failure.
const pgCheckViolation = "23514"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Queries run on the transaction bound by database.UnitOfWork when present.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. bus may be nil, in which case no events are published.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Add upserts item within the unit-of-work transaction and publishes, on the
// same transaction, an ItemCreatedEvent for a new row or an ItemUpdatedEvent
// when an existing row was overwritten.
func (r *ItemRepository) Add(ctx context.Context, item models.Item) error {
	return r.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var inserted bool
		if err := tx.QueryRowContext(ctx, upsertItemSQL,
			item.ID().UUID(), item.Name().String(), nullString(item.DescriptionPtr()),
		).Scan(&inserted); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
				return fmt.Errorf("insert item: %w", itemdomain.ErrInvalidItemName)
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishUpserted(ctx, tx, item, inserted); err != nil {
				return fmt.Errorf("publish item upserted: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by ID. ok is false if no row matches.
func (r *ItemRepository) GetByID(ctx context.Context, id models.ItemID) (models.Item, bool, error) {
	row := r.db.ExecutorFrom(ctx).QueryRowContext(ctx, getItemSQL, id.UUID())
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, false, nil
	}
	if err != nil {
		return models.Item{}, false, fmt.Errorf("query item: %w", err)
	}
	return item, true, nil
}

// ListAll returns every item ordered by ID, which for UUIDv7 is creation order.
func (r *ItemRepository) ListAll(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.ExecutorFrom(ctx).QueryContext(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// DeleteByID removes an item and publishes an ItemDeletedEvent when a row was removed.
func (r *ItemRepository) DeleteByID(ctx context.Context, id models.ItemID) (models.Item, bool, error) {
	var (
		deleted models.Item
		found   bool
	)
	err := r.inTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		item, err := scanItem(tx.QueryRowContext(ctx, deleteItemSQL, id.UUID()))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		deleted, found = item, true

		if r.bus != nil {
			if err := r.publishDeleted(ctx, tx, item); err != nil {
				return fmt.Errorf("publish item deleted: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Item{}, false, err
	}
	return deleted, found, nil
}

// inTx runs fn on the unit-of-work transaction in ctx, or on a fresh one.
func (r *ItemRepository) inTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	if tx, ok := database.TxFrom(ctx); ok {
		return fn(ctx, tx)
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(database.ContextWithTx(ctx, tx), tx)
	})
}

func (r *ItemRepository) publishUpserted(ctx context.Context, tx *sql.Tx, item models.Item, inserted bool) error {
	topic, eventID, payload := upsertEvent(item, inserted)
	return r.bus.PublishTx(ctx, tx, topic, eventID.String(), payload)
}

// upsertEvent picks the topic and payload for an upsert outcome.
func upsertEvent(item models.Item, inserted bool) (topic string, eventID uuid.UUID, payload any) {
	event := domainevents.ItemCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      item.ID().UUID(),
		Name:        item.Name().String(),
		Description: item.DescriptionPtr(),
		OccurredAt:  time.Now().UTC(),
	}
	if inserted {
		return domainevents.TopicItemCreated, event.EventID, event
	}
	return domainevents.TopicItemUpdated, event.EventID, domainevents.ItemUpdatedEvent(event)
}

func (r *ItemRepository) publishDeleted(ctx context.Context, tx *sql.Tx, item models.Item) error {
	event := domainevents.ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID().UUID(),
		OccurredAt: time.Now().UTC(),
	}
	return r.bus.PublishTx(ctx, tx, domainevents.TopicItemDeleted, event.EventID.String(), event)
}

type scanner interface {
	Scan(dest ...any) error
}

// scanItem maps an items row to a domain models.Item.
func scanItem(s scanner) (models.Item, error) {
	var (
		id          uuid.UUID
		name        string
		description sql.NullString
	)
	if err := s.Scan(&id, &name, &description); err != nil {
		return models.Item{}, err
	}
	var desc *string
	if description.Valid {
		desc = &description.String
	}
	return models.LoadItem(models.ItemID(id), name, desc)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
