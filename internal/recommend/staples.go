package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
)

// staplesMetaScore is the meta score assigned to format staples. Cards
// this sourcer finds are popular by construction, so the score reflects
// the sourcing signal rather than a per-card lookup.
const staplesMetaScore = 85

// overFetchFactor is how many extra candidates each sourcer requests,
// anticipating losses to dedup and in-deck filtering.
const overFetchFactor = 2

// sourcePageCap bounds any single sourcing query to one result page of
// the card service.
const sourcePageCap = 175

// sourceStaples finds the most-played cards legal in the format that
// fit the deck's color identity, using popularity ordering.
func sourceStaples(ctx context.Context, src CardSource, an *analysis.DeckAnalysis, format string, skip map[string]bool, target int) []SmartRecommendation {
	if target <= 0 {
		return nil
	}

	query := "-t:basic"
	if letters := colorLetters(an.Colors); letters != "" {
		query = fmt.Sprintf("id<=%s -t:basic", letters)
	}

	fetch := target * overFetchFactor
	if fetch > sourcePageCap {
		fetch = sourcePageCap
	}
	found := src.Search(ctx, query, cards.SearchOptions{
		Format:     format,
		Order:      "edhrec",
		Unique:     "cards",
		MaxResults: fetch,
	})

	recs := scoreCandidates(found, skip, an, format, "Popular format staple", target)
	for i := range recs {
		recs[i].MetaScore = staplesMetaScore
	}
	return recs
}

// colorLetters renders a color list as a scryfall identity string,
// e.g. ["W","U"] -> "wu".
func colorLetters(colors []string) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(strings.ToLower(c))
	}
	return b.String()
}
