package scryfall

import (
	"errors"
	"fmt"

	"github.com/mtgkit/deckforge/internal/cards"
)

// rawCard is the service's wire representation of a card. Only the
// fields the engine consumes are decoded.
type rawCard struct {
	Name          string            `json:"name"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"color_identity"`
	Keywords      []string          `json:"keywords,omitempty"`
	Rarity        string            `json:"rarity"`
	Legalities    map[string]string `json:"legalities,omitempty"`
}

// toCard converts the wire form to the engine's card model, deriving
// any fields the service omitted.
func (r *rawCard) toCard() cards.Card {
	card := cards.Card{
		Name:          r.Name,
		ManaCost:      r.ManaCost,
		CMC:           int(r.CMC),
		TypeLine:      r.TypeLine,
		OracleText:    r.OracleText,
		Colors:        r.Colors,
		ColorIdentity: r.ColorIdentity,
		Keywords:      r.Keywords,
		Rarity:        r.Rarity,
		Legalities:    r.Legalities,
	}
	card.Normalize()
	return card
}

// searchResult is one page of search results from the service.
type searchResult struct {
	Object     string    `json:"object"`
	TotalCards int       `json:"total_cards"`
	HasMore    bool      `json:"has_more"`
	Data       []rawCard `json:"data"`
}

// APIError is a service-reported error object.
type APIError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("card service error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("card service error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 from the service.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
