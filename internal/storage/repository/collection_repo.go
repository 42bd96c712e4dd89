package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

// CollectionRepository handles database operations for the owned-card
// collection. Names are stored normalized.
type CollectionRepository interface {
	// Upsert inserts or updates an owned quantity. Zero removes the
	// entry.
	Upsert(ctx context.Context, name string, quantity int) error

	// Get retrieves the owned quantity for a card name. Missing cards
	// report zero.
	Get(ctx context.Context, name string) (int, error)

	// Snapshot loads the entire collection into memory for the engine.
	Snapshot(ctx context.Context) (deck.Collection, error)

	// ReplaceAll swaps the whole collection for the given one, used by
	// the collection file watcher.
	ReplaceAll(ctx context.Context, collection deck.Collection) error
}

type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new collection repository.
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Upsert(ctx context.Context, name string, quantity int) error {
	key := cards.NormalizeName(name)
	if quantity <= 0 {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM collection WHERE name = ?`, key); err != nil {
			return fmt.Errorf("failed to remove collection entry: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO collection (name, quantity, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			quantity = excluded.quantity,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, quantity, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert collection entry: %w", err)
	}
	return nil
}

func (r *collectionRepository) Get(ctx context.Context, name string) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx, `SELECT quantity FROM collection WHERE name = ?`,
		cards.NormalizeName(name)).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get collection entry: %w", err)
	}
	return quantity, nil
}

func (r *collectionRepository) Snapshot(ctx context.Context) (deck.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, quantity FROM collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	defer rows.Close()

	collection := deck.Collection{}
	for rows.Next() {
		var (
			name     string
			quantity int
		)
		if err := rows.Scan(&name, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		collection[name] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	return collection, nil
}

func (r *collectionRepository) ReplaceAll(ctx context.Context, collection deck.Collection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection`); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	insert := `INSERT INTO collection (name, quantity, updated_at) VALUES (?, ?, ?)`
	now := time.Now().UTC()
	for name, quantity := range collection {
		if quantity <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert, cards.NormalizeName(name), quantity, now); err != nil {
			return fmt.Errorf("failed to insert collection entry %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}
