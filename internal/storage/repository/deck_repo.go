// Package repository implements database access for decks and the
// owned-card collection.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

// ErrPlaysetExceeded is returned when a non-basic card would exceed the
// legal copy limit across both zones.
var ErrPlaysetExceeded = errors.New("card exceeds playset limit")

// ErrDeckNotFound is returned when a deck ID does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// DeckRepository handles database operations for decks.
type DeckRepository interface {
	// Create inserts a new deck. A missing ID is generated.
	Create(ctx context.Context, d *deck.Deck) error

	// Update updates a deck's name and format.
	Update(ctx context.Context, d *deck.Deck) error

	// GetByID retrieves a deck with all its cards.
	GetByID(ctx context.Context, id string) (*deck.Deck, error)

	// List retrieves all decks without their card lists.
	List(ctx context.Context) ([]*deck.Deck, error)

	// Delete deletes a deck and its cards.
	Delete(ctx context.Context, id string) error

	// SetCards replaces a deck's card list atomically, enforcing the
	// playset limit for non-basic cards.
	SetCards(ctx context.Context, deckID string, cardList []deck.Card) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, d *deck.Deck) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	query := `
		INSERT INTO decks (id, name, format, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Name, d.Format, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	if len(d.Cards) > 0 {
		if err := r.SetCards(ctx, d.ID, d.Cards); err != nil {
			return err
		}
	}
	return nil
}

func (r *deckRepository) Update(ctx context.Context, d *deck.Deck) error {
	d.UpdatedAt = time.Now().UTC()

	query := `UPDATE decks SET name = ?, format = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Format, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrDeckNotFound
	}
	return nil
}

func (r *deckRepository) GetByID(ctx context.Context, id string) (*deck.Deck, error) {
	query := `SELECT id, name, format, created_at, updated_at FROM decks WHERE id = ?`

	var d deck.Deck
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Format, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	cardsQuery := `
		SELECT name, mana_cost, cmc, type_line, rarity, oracle_text,
		       colors, color_identity, quantity, zone
		FROM deck_cards WHERE deck_id = ? ORDER BY zone, name
	`
	rows, err := r.db.QueryContext(ctx, cardsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c             cards.Card
			colors        string
			colorIdentity string
			quantity      int
			zone          string
		)
		if err := rows.Scan(&c.Name, &c.ManaCost, &c.CMC, &c.TypeLine, &c.Rarity,
			&c.OracleText, &colors, &colorIdentity, &quantity, &zone); err != nil {
			return nil, fmt.Errorf("failed to scan deck card: %w", err)
		}
		c.Colors = splitColors(colors)
		c.ColorIdentity = splitColors(colorIdentity)
		d.Cards = append(d.Cards, deck.Card{Card: c, Quantity: quantity, Zone: deck.Zone(zone)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck cards: %w", err)
	}

	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]*deck.Deck, error) {
	query := `SELECT id, name, format, created_at, updated_at FROM decks ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []*deck.Deck
	for rows.Next() {
		var d deck.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Format, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decks: %w", err)
	}
	return decks, nil
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrDeckNotFound
	}
	// Card rows cascade when foreign keys are on; clean up explicitly
	// so behavior does not depend on the pragma.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete deck cards: %w", err)
	}
	return nil
}

func (r *deckRepository) SetCards(ctx context.Context, deckID string, cardList []deck.Card) error {
	if err := checkPlaysets(cardList); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("failed to clear deck cards: %w", err)
	}

	insert := `
		INSERT INTO deck_cards (
			deck_id, name, mana_cost, cmc, type_line, rarity,
			oracle_text, colors, color_identity, quantity, zone
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, dc := range cardList {
		zone := dc.Zone
		if zone == "" {
			zone = deck.ZoneMain
		}
		_, err := tx.ExecContext(ctx, insert,
			deckID,
			dc.Card.Name,
			dc.Card.ManaCost,
			dc.Card.CMC,
			dc.Card.TypeLine,
			dc.Card.Rarity,
			dc.Card.OracleText,
			joinColors(dc.Card.Colors),
			joinColors(dc.Card.ColorIdentity),
			dc.Quantity,
			string(zone),
		)
		if err != nil {
			return fmt.Errorf("failed to insert deck card %q: %w", dc.Card.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE decks SET updated_at = ? WHERE id = ?`, time.Now().UTC(), deckID); err != nil {
		return fmt.Errorf("failed to touch deck: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck cards: %w", err)
	}
	return nil
}

// checkPlaysets verifies no non-basic card exceeds the copy limit
// across both zones.
func checkPlaysets(cardList []deck.Card) error {
	totals := make(map[string]int)
	for _, dc := range cardList {
		if dc.Card.IsBasicLand() {
			continue
		}
		key := cards.NormalizeName(dc.Card.Name)
		totals[key] += dc.Quantity
		if totals[key] > deck.PlaysetLimit {
			return fmt.Errorf("%w: %q has %d copies", ErrPlaysetExceeded, dc.Card.Name, totals[key])
		}
	}
	return nil
}

func joinColors(colors []string) string {
	return strings.Join(colors, ",")
}

func splitColors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
