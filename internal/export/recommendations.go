package export

import (
	"strings"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/recommend"
)

// RecommendationRow is the flat export shape of one recommendation.
type RecommendationRow struct {
	Rank         int     `csv:"Rank" json:"rank"`
	Name         string  `csv:"Card" json:"name"`
	Type         string  `csv:"Type" json:"type"`
	ManaCost     string  `csv:"Mana Cost" json:"manaCost"`
	CMC          int     `csv:"CMC" json:"cmc"`
	Rarity       string  `csv:"Rarity" json:"rarity"`
	Confidence   float64 `csv:"Confidence" json:"confidence"`
	SynergyScore float64 `csv:"Synergy" json:"synergyScore"`
	MetaScore    float64 `csv:"Meta" json:"metaScore"`
	DeckFit      float64 `csv:"Deck Fit" json:"deckFit"`
	Cost         string  `csv:"Cost" json:"cost"`
	Reasons      string  `csv:"Reasons" json:"reasons"`
}

// RecommendationRows flattens ranked recommendations for export.
func RecommendationRows(recs []recommend.SmartRecommendation) []RecommendationRow {
	rows := make([]RecommendationRow, len(recs))
	for i, rec := range recs {
		rows[i] = RecommendationRow{
			Rank:         i + 1,
			Name:         rec.Name,
			Type:         rec.Type,
			ManaCost:     rec.ManaCost,
			CMC:          rec.CMC,
			Rarity:       rec.Rarity,
			Confidence:   rec.Confidence,
			SynergyScore: rec.SynergyScore,
			MetaScore:    rec.MetaScore,
			DeckFit:      rec.DeckFit,
			Cost:         string(rec.CostConsideration),
			Reasons:      strings.Join(rec.Reasons, "; "),
		}
	}
	return rows
}

// WriteRecommendations exports ranked recommendations to a file.
func WriteRecommendations(recs []recommend.SmartRecommendation, opts Options) error {
	if opts.Format == FormatJSON {
		return NewExporter(opts).Export(recs)
	}
	return NewExporter(opts).Export(RecommendationRows(recs))
}

// CurveRow is the flat export shape of one mana-curve bucket.
type CurveRow struct {
	CMC   int `csv:"CMC" json:"cmc"`
	Count int `csv:"Count" json:"count"`
}

// WriteAnalysis exports a deck analysis to a file. CSV output carries
// the mana curve; JSON output carries the full analysis.
func WriteAnalysis(an *analysis.DeckAnalysis, opts Options) error {
	if opts.Format == FormatJSON {
		return NewExporter(opts).Export(an)
	}

	maxCMC := 0
	for cmc := range an.ManaCurve {
		if cmc > maxCMC {
			maxCMC = cmc
		}
	}
	rows := make([]CurveRow, 0, maxCMC+1)
	for cmc := 0; cmc <= maxCMC; cmc++ {
		rows = append(rows, CurveRow{CMC: cmc, Count: an.ManaCurve[cmc]})
	}
	return NewExporter(opts).Export(rows)
}
