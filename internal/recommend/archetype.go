package recommend

import (
	"context"
	"fmt"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
)

// archetypeQueries maps each archetype to the search queries that find
// cards serving its game plan. Queries are tried in order and the
// target is split evenly across them.
var archetypeQueries = map[string][]string{
	analysis.ArchetypeAggro: {
		"t:creature cmc<=2 (kw:haste or kw:prowess or kw:menace)",
		"t:creature cmc<=3 pow>=3",
		"o:\"deals damage\" t:instant cmc<=2",
	},
	analysis.ArchetypeControl: {
		"o:\"counter target\" t:instant",
		"o:\"draw\" o:\"card\" t:instant cmc<=4",
		"o:\"destroy all\" t:sorcery",
	},
	analysis.ArchetypeMidrange: {
		"t:creature cmc=3 pow>=3",
		"t:creature cmc=4 (kw:trample or kw:vigilance)",
		"t:planeswalker cmc<=5",
	},
	analysis.ArchetypeCombo: {
		"o:\"search your library for a card\"",
		"o:\"whenever you cast\" t:enchantment",
		"o:\"without paying\"",
	},
	analysis.ArchetypeRamp: {
		"o:\"search your library for a\" o:\"land\" cmc<=3",
		"o:\"add\" o:\"{g}\" t:creature cmc<=2",
		"t:creature cmc>=6 pow>=6",
	},
}

// sourceArchetype finds cards tailored to the deck's archetype game
// plan, splitting the target evenly across the archetype's query set.
func sourceArchetype(ctx context.Context, src CardSource, an *analysis.DeckAnalysis, format string, skip map[string]bool, target int) []SmartRecommendation {
	if target <= 0 {
		return nil
	}
	queries, ok := archetypeQueries[an.Archetype]
	if !ok || len(queries) == 0 {
		return nil
	}

	reason := fmt.Sprintf("Perfect fit for %s strategy", an.Archetype)
	perQuery := target/len(queries) + 1
	fetch := perQuery * overFetchFactor
	if fetch > sourcePageCap {
		fetch = sourcePageCap
	}

	var recs []SmartRecommendation
	for _, query := range queries {
		if len(recs) >= target {
			break
		}
		if letters := colorLetters(an.Colors); letters != "" {
			query = fmt.Sprintf("%s id<=%s", query, letters)
		}
		found := src.Search(ctx, query, cards.SearchOptions{
			Format:     format,
			Order:      "edhrec",
			Unique:     "cards",
			MaxResults: fetch,
		})
		recs = append(recs, scoreCandidates(found, skip, an, format, reason, perQuery)...)
	}

	if len(recs) > target {
		recs = recs[:target]
	}
	return recs
}
