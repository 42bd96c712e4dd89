package recommend

import (
	"context"
	"fmt"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
)

// maxSynergyThemes caps how many deck themes drive synergy sourcing.
// Themes arrive sorted by salience, so the cap keeps queries focused on
// what the deck is actually doing.
const maxSynergyThemes = 4

// mechanicQueries maps a mechanic theme name to the search query that
// finds cards feeding it.
var mechanicQueries = map[string]string{
	"graveyard":    "o:\"from your graveyard\"",
	"sacrifice":    "o:\"sacrifice a\"",
	"draw":         "o:\"draw\" o:\"card\"",
	"ramp":         "o:\"search your library for a\" o:\"land\"",
	"tokens":       "o:\"create\" o:\"token\"",
	"counters":     "o:\"+1/+1 counter\"",
	"lifegain":     "o:\"you gain\" o:\"life\"",
	"counterspell": "o:\"counter target\"",
	"tutor":        "o:\"search your library for a card\"",
	"spells":       "o:\"whenever you cast\" o:\"instant or sorcery\"",
}

// sourceSynergy finds cards that reinforce the deck's detected themes,
// most salient theme first.
func sourceSynergy(ctx context.Context, src CardSource, an *analysis.DeckAnalysis, format string, skip map[string]bool, target int) []SmartRecommendation {
	if target <= 0 || len(an.Themes) == 0 {
		return nil
	}

	themes := an.Themes
	if len(themes) > maxSynergyThemes {
		themes = themes[:maxSynergyThemes]
	}

	perTheme := target/len(themes) + 1
	fetch := perTheme * overFetchFactor
	if fetch > sourcePageCap {
		fetch = sourcePageCap
	}

	var recs []SmartRecommendation
	for _, theme := range themes {
		if len(recs) >= target {
			break
		}

		var query string
		switch theme.Kind {
		case analysis.ThemeTribal:
			query = fmt.Sprintf("t:%s", theme.Name)
		case analysis.ThemeMechanic:
			q, ok := mechanicQueries[theme.Name]
			if !ok {
				continue
			}
			query = q
		default:
			continue
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
		reason := fmt.Sprintf("Strong %s synergy", theme.Name)
		recs = append(recs, scoreCandidates(found, skip, an, format, reason, perTheme)...)
	}

	if len(recs) > target {
		recs = recs[:target]
	}
	return recs
}
