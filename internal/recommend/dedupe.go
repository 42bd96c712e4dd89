package recommend

import (
	"sort"

	"github.com/mtgkit/deckforge/internal/cards"
)

// confidenceTieWindow is how close two confidence scores must be before
// the ranker treats them as tied and falls through to synergy.
const confidenceTieWindow = 0.1

// dedupeAndRank collapses duplicate candidates and orders the survivors
// for presentation. Duplicates are matched by normalized name and the
// first occurrence wins, so earlier sourcing phases take precedence.
//
// Ranking: owned cards first, then confidence descending, with synergy
// breaking near-ties in confidence. The result is truncated to limit.
func dedupeAndRank(recs []SmartRecommendation, limit int) []SmartRecommendation {
	seen := make(map[string]bool, len(recs))
	unique := recs[:0:0]
	for _, rec := range recs {
		key := cards.NormalizeName(rec.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, rec)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		aOwned := a.CostConsideration == CostOwned
		bOwned := b.CostConsideration == CostOwned
		if aOwned != bOwned {
			return aOwned
		}
		diff := a.Confidence - b.Confidence
		if diff > confidenceTieWindow {
			return true
		}
		if diff < -confidenceTieWindow {
			return false
		}
		return a.SynergyScore > b.SynergyScore
	})

	if limit > 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
