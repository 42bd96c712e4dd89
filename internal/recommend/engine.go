package recommend

import (
	"context"
	"log"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

// DefaultCount is the number of recommendations returned when the
// caller does not specify one.
const DefaultCount = 20

// Engine produces deck analyses and scored card recommendations. It is
// stateless between requests; all card data flows through the injected
// CardSource.
type Engine struct {
	source CardSource
}

// New builds an Engine backed by the given card source.
func New(source CardSource) *Engine {
	return &Engine{source: source}
}

// Analyze computes the deck profile used throughout the pipeline. It
// never touches the card source.
func (e *Engine) Analyze(d *deck.Deck) *analysis.DeckAnalysis {
	return analysis.Analyze(d)
}

// Recommend runs the full pipeline and returns the ranked list. It is
// RecommendWithProgress without a callback.
func (e *Engine) Recommend(ctx context.Context, d *deck.Deck, collection deck.Collection, count int, format string) []SmartRecommendation {
	return e.RecommendWithProgress(ctx, d, collection, count, format, nil)
}

// RecommendWithProgress runs the four sourcing phases in fixed order,
// reporting accumulated progress after each, then dedupes, ranks and
// annotates ownership. Phases run sequentially; a cancelled context
// stops sourcing and finalizes whatever was gathered.
func (e *Engine) RecommendWithProgress(ctx context.Context, d *deck.Deck, collection deck.Collection, count int, format string, onProgress ProgressFunc) []SmartRecommendation {
	if count <= 0 {
		count = DefaultCount
	}
	if format == "" && d != nil {
		format = d.Format
	}

	an := analysis.Analyze(d)
	skip := make(map[string]bool)
	if d != nil {
		for name := range d.CardNames() {
			skip[name] = true
		}
	}

	// Each sourcer gets half the target; with four phases that leaves
	// roughly double the candidates for dedup and ranking to choose
	// from.
	perSourcer := (count + 1) / 2

	type phaseSourcer struct {
		phase  Phase
		source func(context.Context, CardSource, *analysis.DeckAnalysis, string, map[string]bool, int) []SmartRecommendation
	}
	phases := []phaseSourcer{
		{PhaseStaples, sourceStaples},
		{PhaseArchetype, sourceArchetype},
		{PhaseSynergy, sourceSynergy},
		{PhaseCurve, sourceCurve},
	}

	// The progress total is the sum of the sourcers' targets, not the
	// final truncated count: callbacks see the gathering pipeline.
	reporter := newProgressReporter(onProgress, len(phases)*perSourcer)
	reporter.advance(PhaseInit, nil)

	var gathered []SmartRecommendation
	for _, p := range phases {
		if ctx.Err() != nil {
			log.Printf("[Recommend] context cancelled before %s, finalizing early", p.phase.Label())
			break
		}
		found := p.source(ctx, e.source, an, format, skip, perSourcer)
		gathered = append(gathered, found...)
		reporter.advance(p.phase, gathered)
	}

	annotateOwnership(gathered, collection)
	final := dedupeAndRank(gathered, count)
	reporter.advance(PhaseFinalize, final)
	reporter.advance(PhaseDone, final)
	return final
}

// scoreCandidates scores raw search results against the deck profile,
// skipping cards already in the deck, and prepends the sourcing
// rationale to each reason list. At most target results are returned.
func scoreCandidates(found []cards.Card, skip map[string]bool, an *analysis.DeckAnalysis, format, reason string, target int) []SmartRecommendation {
	var recs []SmartRecommendation
	for _, c := range found {
		if target > 0 && len(recs) >= target {
			break
		}
		if skip[cards.NormalizeName(c.Name)] {
			continue
		}
		rec := scoreCard(c, an, format)
		rec.Reasons = append([]string{reason}, rec.Reasons...)
		recs = append(recs, rec)
	}
	return recs
}
