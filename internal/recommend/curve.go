package recommend

import (
	"context"
	"fmt"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
)

// sourceCurve finds cards that fill underrepresented mana-cost slots.
// A deck with no curve gaps sources nothing here.
func sourceCurve(ctx context.Context, src CardSource, an *analysis.DeckAnalysis, format string, skip map[string]bool, target int) []SmartRecommendation {
	if target <= 0 {
		return nil
	}
	gaps := curveGaps(an)
	if len(gaps) == 0 {
		return nil
	}

	perGap := target/len(gaps) + 1
	fetch := perGap * overFetchFactor
	if fetch > sourcePageCap {
		fetch = sourcePageCap
	}

	var recs []SmartRecommendation
	for _, cmc := range gaps {
		if len(recs) >= target {
			break
		}
		query := fmt.Sprintf("cmc=%d -t:land", cmc)
		if letters := colorLetters(an.Colors); letters != "" {
			query = fmt.Sprintf("%s id<=%s", query, letters)
		}
		found := src.Search(ctx, query, cards.SearchOptions{
			Format:     format,
			Order:      "edhrec",
			Unique:     "cards",
			MaxResults: fetch,
		})
		reason := fmt.Sprintf("Fills mana curve gap at %d CMC", cmc)
		recs = append(recs, scoreCandidates(found, skip, an, format, reason, perGap)...)
	}

	if len(recs) > target {
		recs = recs[:target]
	}
	return recs
}
