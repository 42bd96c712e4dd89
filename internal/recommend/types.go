// Package recommend implements the deck recommendation engine: four
// sequential candidate sourcing strategies, a bounded heuristic scorer,
// dedup/ranking and ownership annotation, with progressive reporting.
package recommend

import (
	"context"

	"github.com/mtgkit/deckforge/internal/cards"
)

// CostConsideration tags what acquiring a recommended card costs.
type CostConsideration string

const (
	// CostOwned marks a card already in the player's collection.
	CostOwned CostConsideration = "owned"
	// CostCommonCraft through CostMythicCraft are craft tiers derived
	// from rarity for cards not owned.
	CostCommonCraft   CostConsideration = "common_craft"
	CostUncommonCraft CostConsideration = "uncommon_craft"
	CostRareCraft     CostConsideration = "rare_craft"
	CostMythicCraft   CostConsideration = "mythic_craft"
)

// SmartRecommendation is one scored candidate card. All scores are in
// [0,100]; confidence is further clamped to [20,98].
type SmartRecommendation struct {
	Name              string            `json:"name"`
	ManaCost          string            `json:"manaCost,omitempty"`
	Type              string            `json:"type"`
	Rarity            string            `json:"rarity,omitempty"`
	Confidence        float64           `json:"confidence"`
	SynergyScore      float64           `json:"synergyScore"`
	MetaScore         float64           `json:"metaScore"`
	DeckFit           float64           `json:"deckFit"`
	CostConsideration CostConsideration `json:"costConsideration"`
	Reasons           []string          `json:"reasons"`
	CMC               int               `json:"cmc"`

	// Passthrough fields for display and filtering by callers.
	Legalities map[string]string `json:"legalities,omitempty"`
	OracleText string            `json:"oracleText,omitempty"`
	Keywords   []string          `json:"keywords,omitempty"`
}

// CardSource is the engine's view of the card data layer. The caching
// service satisfies it in production; tests inject a deterministic
// fake. Search never fails: a service error shows up as an empty slice.
type CardSource interface {
	Search(ctx context.Context, query string, opts cards.SearchOptions) []cards.Card
	GetByName(ctx context.Context, name string) (*cards.Card, bool)
}

// craftTierForRarity maps a rarity string to its craft cost tier.
func craftTierForRarity(rarity string) CostConsideration {
	switch rarity {
	case "mythic":
		return CostMythicCraft
	case "rare":
		return CostRareCraft
	case "uncommon":
		return CostUncommonCraft
	default:
		return CostCommonCraft
	}
}
