package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

func sampleDeck() *deck.Deck {
	return &deck.Deck{
		Name:   "Mono Red",
		Format: "standard",
		Cards: []deck.Card{
			{
				Card: cards.Card{
					Name: "Lightning Strike", CMC: 2, TypeLine: "Instant",
					Rarity: "common", Colors: []string{"R"}, ColorIdentity: []string{"R"},
					OracleText: "Lightning Strike deals 3 damage to any target.",
				},
				Quantity: 4,
				Zone:     deck.ZoneMain,
			},
			{
				Card: cards.Card{
					Name: "Mountain", TypeLine: "Basic Land — Mountain",
				},
				Quantity: 20,
				Zone:     deck.ZoneMain,
			},
			{
				Card: cards.Card{
					Name: "Abrade", CMC: 2, TypeLine: "Instant",
					Rarity: "uncommon", Colors: []string{"R"}, ColorIdentity: []string{"R"},
				},
				Quantity: 2,
				Zone:     deck.ZoneSideboard,
			},
		},
	}
}

func TestDeckCreateAndGet(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := sampleDeck()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if d.ID == "" {
		t.Fatal("expected generated deck ID")
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Mono Red" || got.Format != "standard" {
		t.Errorf("unexpected deck metadata: %+v", got)
	}
	if len(got.Cards) != 3 {
		t.Fatalf("expected 3 card rows, got %d", len(got.Cards))
	}

	var strike *deck.Card
	for i := range got.Cards {
		if got.Cards[i].Card.Name == "Lightning Strike" {
			strike = &got.Cards[i]
		}
	}
	if strike == nil {
		t.Fatal("Lightning Strike not round-tripped")
	}
	if strike.Quantity != 4 || strike.Zone != deck.ZoneMain {
		t.Errorf("unexpected card row: %+v", strike)
	}
	if len(strike.Card.Colors) != 1 || strike.Card.Colors[0] != "R" {
		t.Errorf("colors not round-tripped: %v", strike.Card.Colors)
	}
}

func TestDeckGetMissing(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestDeckUpdate(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := sampleDeck()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	d.Name = "Burn"
	d.Format = "pioneer"
	if err := repo.Update(ctx, d); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Burn" || got.Format != "pioneer" {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Update(ctx, &deck.Deck{ID: "missing"}); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound for missing deck, got %v", err)
	}
}

func TestDeckDelete(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := sampleDeck()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, d.ID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected deck gone, got %v", err)
	}
	if err := repo.Delete(ctx, d.ID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound on double delete, got %v", err)
	}
}

func TestDeckList(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if err := repo.Create(ctx, &deck.Deck{Name: name, Format: "standard"}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	decks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(decks) != 3 {
		t.Errorf("expected 3 decks, got %d", len(decks))
	}
}

func TestPlaysetEnforced(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := &deck.Deck{
		Name:   "Illegal",
		Format: "standard",
		Cards: []deck.Card{
			{
				Card:     cards.Card{Name: "Shock", TypeLine: "Instant"},
				Quantity: 3,
				Zone:     deck.ZoneMain,
			},
			{
				Card:     cards.Card{Name: "Shock", TypeLine: "Instant"},
				Quantity: 2,
				Zone:     deck.ZoneSideboard,
			},
		},
	}
	err := repo.Create(ctx, d)
	if !errors.Is(err, ErrPlaysetExceeded) {
		t.Errorf("expected ErrPlaysetExceeded across zones, got %v", err)
	}
}

func TestPlaysetIgnoresBasics(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := &deck.Deck{
		Name:   "Lands",
		Format: "standard",
		Cards: []deck.Card{
			{
				Card:     cards.Card{Name: "Mountain", TypeLine: "Basic Land — Mountain"},
				Quantity: 24,
				Zone:     deck.ZoneMain,
			},
		},
	}
	if err := repo.Create(ctx, d); err != nil {
		t.Errorf("expected basics exempt from playset limit, got %v", err)
	}
}

func TestSetCardsReplaces(t *testing.T) {
	repo := NewDeckRepository(setupTestDB(t))
	ctx := context.Background()

	d := sampleDeck()
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := []deck.Card{
		{
			Card:     cards.Card{Name: "Play with Fire", CMC: 1, TypeLine: "Instant", Rarity: "rare"},
			Quantity: 4,
			Zone:     deck.ZoneMain,
		},
	}
	if err := repo.SetCards(ctx, d.ID, replacement); err != nil {
		t.Fatalf("SetCards failed: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Cards) != 1 || got.Cards[0].Card.Name != "Play with Fire" {
		t.Errorf("expected replaced card list, got %+v", got.Cards)
	}
}
