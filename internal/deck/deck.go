// Package deck holds the deck and collection models consumed by the
// analyzer and the recommendation engine.
package deck

import (
	"time"

	"github.com/mtgkit/deckforge/internal/cards"
)

// Zone identifies which board a deck card belongs to.
type Zone string

const (
	// ZoneMain is the mainboard.
	ZoneMain Zone = "main"
	// ZoneSideboard is the sideboard.
	ZoneSideboard Zone = "sideboard"
)

// PlaysetLimit is the maximum legal copies of a non-basic card across
// both zones. Enforced by the deck store, not by the engine.
const PlaysetLimit = 4

// Card is a card entry in a deck: a card reference, a quantity and a
// zone.
type Card struct {
	Card     cards.Card `json:"card"`
	Quantity int        `json:"quantity"`
	Zone     Zone       `json:"zone"`
}

// Deck is a named, zone-partitioned list of cards.
type Deck struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Mainboard returns the deck's mainboard entries.
func (d *Deck) Mainboard() []Card {
	var main []Card
	for _, dc := range d.Cards {
		if dc.Zone == ZoneMain {
			main = append(main, dc)
		}
	}
	return main
}

// CardNames returns the set of normalized card names in the mainboard.
// The recommendation engine uses this to skip cards already played.
func (d *Deck) CardNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, dc := range d.Cards {
		if dc.Zone == ZoneMain {
			names[cards.NormalizeName(dc.Card.Name)] = struct{}{}
		}
	}
	return names
}

// TotalCards returns the number of mainboard cards counting quantities.
func (d *Deck) TotalCards() int {
	total := 0
	for _, dc := range d.Cards {
		if dc.Zone == ZoneMain {
			total += dc.Quantity
		}
	}
	return total
}

// Collection maps normalized card names to owned quantities. It is a
// read-only input to the engine.
type Collection map[string]int

// Owned returns the owned quantity for a card name, matching
// case-insensitively.
func (c Collection) Owned(name string) (int, bool) {
	qty, ok := c[cards.NormalizeName(name)]
	return qty, ok && qty > 0
}

// Add records owned copies of a card.
func (c Collection) Add(name string, quantity int) {
	c[cards.NormalizeName(name)] += quantity
}
