package recommend

import (
	"fmt"

	"github.com/mtgkit/deckforge/internal/deck"
)

// annotateOwnership marks recommendations the player already owns.
// Owned cards get the CostOwned tier and a leading reason with the
// owned count; everything else keeps its rarity craft tier.
func annotateOwnership(recs []SmartRecommendation, collection deck.Collection) {
	if len(collection) == 0 {
		return
	}
	for i := range recs {
		qty, ok := collection.Owned(recs[i].Name)
		if !ok || qty <= 0 {
			continue
		}
		recs[i].CostConsideration = CostOwned
		note := fmt.Sprintf("✅ Already in collection (%dx)", qty)
		recs[i].Reasons = append([]string{note}, recs[i].Reasons...)
	}
}
