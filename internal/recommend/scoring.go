package recommend

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/cards"
)

// Scoring factor bounds. Factors multiply and combine by geometric
// mean, which keeps any single signal from saturating the result.
const (
	synergyWeightMin = 0.50
	synergyWeightMax = 0.90

	rarityFactorMin = 0.65
	rarityFactorMax = 0.95

	cmcEfficiencyMin = 0.50
	cmcEfficiencyMax = 0.90

	typeRelevanceMin = 0.65
	typeRelevanceMax = 0.90

	complexityMin = 0.65
	complexityMax = 0.90

	keywordBonusMin = 0.70
	keywordBonusMax = 0.90

	// Confidence never reaches 100: the engine does not claim
	// certainty about deckbuilding.
	confidenceFloor = 20.0
	confidenceCeil  = 98.0

	// jitterSpread is the half-width of the deterministic score
	// jitter that keeps similar cards from scoring identically.
	jitterSpread = 2.5
)

// curveGapShare is the minimum share of nonland cards a CMC slot in
// [1,5] should hold before it counts as a curve gap.
const curveGapShare = 0.12

// scoreCard converts a raw candidate card into a SmartRecommendation
// against the deck profile. Sourcers prepend their own rationale to the
// reason list afterwards.
func scoreCard(card cards.Card, an *analysis.DeckAnalysis, format string) SmartRecommendation {
	policy := PolicyForFormat(format)

	colorFit := colorSynergy(card.ColorIdentity, an.Colors, policy)
	archFit := archetypeFit(card, an)
	curveFit := curveGapFit(card.CMC, an)
	composite := 0.5*colorFit + 0.3*archFit + 0.2*curveFit

	factors := []float64{
		clamp(synergyWeightMin+0.4*composite, synergyWeightMin, synergyWeightMax),
		rarityFactor(card.Rarity),
		cmcEfficiency(card.CMC),
		typeRelevance(card.PrimaryType(), an.Archetype),
		complexityFactor(card.OracleText),
		keywordBonus(card, an),
	}

	confidence := geometricMean(factors)*100 + jitter(card.Name)
	confidence = clamp(confidence, confidenceFloor, confidenceCeil)

	typeRel := typeRelevance(card.PrimaryType(), an.Archetype)
	deckFit := (0.5*curveFit + 0.5*normalize(typeRel, typeRelevanceMin, typeRelevanceMax)) * 100

	keywords := card.Keywords
	if len(keywords) == 0 {
		keywords = cards.DetectKeywords(card.OracleText)
	}

	return SmartRecommendation{
		Name:              card.Name,
		ManaCost:          card.ManaCost,
		Type:              card.PrimaryType(),
		Rarity:            card.Rarity,
		Confidence:        round1(confidence),
		SynergyScore:      round1(composite * 100),
		MetaScore:         round1(40 + 40*normalize(rarityFactor(card.Rarity), rarityFactorMin, rarityFactorMax)),
		DeckFit:           round1(deckFit),
		CostConsideration: craftTierForRarity(card.Rarity),
		Reasons:           scoreReasons(card, an, colorFit, curveFit),
		CMC:               card.CMC,
		Legalities:        card.Legalities,
		OracleText:        card.OracleText,
		Keywords:          keywords,
	}
}

// archetypeFit scores how well a card serves the deck's archetype, in
// [0,1]. Signals combine with diminishing returns rather than flat
// bonuses.
func archetypeFit(card cards.Card, an *analysis.DeckAnalysis) float64 {
	var signals []float64
	primary := card.PrimaryType()

	switch an.Archetype {
	case analysis.ArchetypeAggro:
		if primary == "Creature" && card.CMC <= 2 {
			signals = append(signals, 0.7)
		}
		for _, kw := range card.Keywords {
			switch kw {
			case "Haste", "First strike", "Double strike", "Trample", "Prowess", "Menace":
				signals = append(signals, 0.5)
			}
		}
	case analysis.ArchetypeControl:
		if primary == "Instant" || primary == "Sorcery" {
			signals = append(signals, 0.6)
		}
		if containsFold(card.OracleText, "counter target") {
			signals = append(signals, 0.7)
		}
		if containsFold(card.OracleText, "draw") {
			signals = append(signals, 0.5)
		}
	case analysis.ArchetypeRamp:
		if containsFold(card.OracleText, "search your library for a") && containsFold(card.OracleText, "land") {
			signals = append(signals, 0.7)
		}
		if card.CMC >= 6 {
			signals = append(signals, 0.5)
		}
	case analysis.ArchetypeCombo:
		if containsFold(card.OracleText, "search your library") {
			signals = append(signals, 0.6)
		}
		if containsFold(card.OracleText, "whenever you cast") {
			signals = append(signals, 0.5)
		}
	default: // midrange
		if primary == "Creature" && card.CMC >= 3 && card.CMC <= 4 {
			signals = append(signals, 0.6)
		}
	}

	// Tribal overlap is an archetype signal regardless of tag.
	for _, tribe := range card.CreatureTypes() {
		for _, theme := range an.Themes {
			if theme.Kind == analysis.ThemeTribal && theme.Name == tribe {
				signals = append(signals, 0.6)
			}
		}
	}

	// Diminishing combination: each signal closes part of the gap.
	fit := 0.25
	for _, s := range signals {
		fit += (1 - fit) * s * 0.6
	}
	return clamp(fit, 0, 1)
}

// curveGapFit scores how much a card's CMC slot needs filling, in
// [0,1]. A slot at or above the minimum share scores a neutral 0.3.
func curveGapFit(cmc int, an *analysis.DeckAnalysis) float64 {
	if cmc < 1 || cmc > 5 || an.NonlandCards == 0 {
		return 0.3
	}
	share := float64(an.ManaCurve[cmc]) / float64(an.NonlandCards)
	if share >= curveGapShare {
		return 0.3
	}
	depletion := (curveGapShare - share) / curveGapShare
	// Square root keeps moderate gaps meaningful without letting a
	// fully empty slot dominate the composite.
	return 0.3 + 0.7*math.Sqrt(depletion)
}

// curveGaps returns the CMC values in [1,5] underrepresented in the
// deck, most depleted first. A gap-free curve yields nil so the curve
// sourcer can skip sourcing entirely.
func curveGaps(an *analysis.DeckAnalysis) []int {
	if an.NonlandCards == 0 {
		return nil
	}
	type gap struct {
		cmc   int
		share float64
	}
	var gaps []gap
	for cmc := 1; cmc <= 5; cmc++ {
		share := float64(an.ManaCurve[cmc]) / float64(an.NonlandCards)
		if share < curveGapShare {
			gaps = append(gaps, gap{cmc, share})
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	// Most depleted first; ties favor the cheaper slot.
	for i := 0; i < len(gaps); i++ {
		for j := i + 1; j < len(gaps); j++ {
			if gaps[j].share < gaps[i].share ||
				(gaps[j].share == gaps[i].share && gaps[j].cmc < gaps[i].cmc) {
				gaps[i], gaps[j] = gaps[j], gaps[i]
			}
		}
	}
	out := make([]int, len(gaps))
	for i, g := range gaps {
		out[i] = g.cmc
	}
	return out
}

func rarityFactor(rarity string) float64 {
	switch rarity {
	case "mythic":
		return rarityFactorMax
	case "rare":
		return 0.85
	case "uncommon":
		return 0.75
	default:
		return rarityFactorMin
	}
}

func cmcEfficiency(cmc int) float64 {
	switch {
	case cmc <= 3:
		return cmcEfficiencyMax
	case cmc == 4:
		return 0.80
	case cmc == 5:
		return 0.70
	case cmc == 6:
		return 0.60
	default:
		return cmcEfficiencyMin
	}
}

func typeRelevance(primaryType, archetype string) float64 {
	relevance := map[string]map[string]float64{
		analysis.ArchetypeAggro: {
			"Creature": 0.90, "Instant": 0.78, "Sorcery": 0.75, "Artifact": 0.72,
		},
		analysis.ArchetypeControl: {
			"Instant": 0.90, "Sorcery": 0.85, "Planeswalker": 0.82, "Enchantment": 0.78,
		},
		analysis.ArchetypeRamp: {
			"Sorcery": 0.85, "Creature": 0.82, "Land": 0.78,
		},
		analysis.ArchetypeCombo: {
			"Artifact": 0.85, "Enchantment": 0.82, "Instant": 0.80, "Sorcery": 0.80,
		},
		analysis.ArchetypeMidrange: {
			"Creature": 0.85, "Planeswalker": 0.80, "Instant": 0.75, "Sorcery": 0.75,
		},
	}
	if m, ok := relevance[archetype]; ok {
		if v, ok := m[primaryType]; ok {
			return v
		}
	}
	return typeRelevanceMin
}

// complexityFactor favors cards with concise rules text; wordy cards
// are harder to evaluate and to play.
func complexityFactor(oracleText string) float64 {
	switch n := len(oracleText); {
	case n <= 60:
		return complexityMax
	case n <= 150:
		return 0.80
	case n <= 300:
		return 0.72
	default:
		return complexityMin
	}
}

// keywordBonus rewards keywords the deck already plays.
func keywordBonus(card cards.Card, an *analysis.DeckAnalysis) float64 {
	deckKeywords := make(map[string]bool, len(an.Keywords))
	for _, kw := range an.Keywords {
		deckKeywords[kw] = true
	}

	keywords := card.Keywords
	if len(keywords) == 0 {
		keywords = cards.DetectKeywords(card.OracleText)
	}

	bonus := keywordBonusMin
	for _, kw := range keywords {
		if deckKeywords[kw] {
			bonus += 0.05
		}
	}
	return clamp(bonus, keywordBonusMin, keywordBonusMax)
}

// scoreReasons explains the signals that drove the score so a reader
// can audit the number.
func scoreReasons(card cards.Card, an *analysis.DeckAnalysis, colorFit, curveFit float64) []string {
	var reasons []string

	if colorFit >= 0.80 {
		reasons = append(reasons, "Fits your deck's colors")
	} else if colorFit <= 0.05 {
		reasons = append(reasons, "Outside your color identity")
	}

	shared := sharedKeywords(card, an)
	if len(shared) == 1 {
		reasons = append(reasons, fmt.Sprintf("Shares %s with your deck", shared[0]))
	} else if len(shared) > 1 {
		reasons = append(reasons, fmt.Sprintf("Shares %d keywords with your deck", len(shared)))
	}

	if an.Archetype == analysis.ArchetypeAggro && card.CMC <= 2 && card.PrimaryType() == "Creature" {
		reasons = append(reasons, "Cheap threat for an aggressive curve")
	}
	if curveFit > 0.5 {
		reasons = append(reasons, fmt.Sprintf("Adds a play at %d CMC where your curve is thin", card.CMC))
	}
	if card.Rarity == "rare" || card.Rarity == "mythic" {
		reasons = append(reasons, "High-impact card for its slot")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Solid general-purpose inclusion")
	}
	return reasons
}

func sharedKeywords(card cards.Card, an *analysis.DeckAnalysis) []string {
	deckKeywords := make(map[string]bool, len(an.Keywords))
	for _, kw := range an.Keywords {
		deckKeywords[kw] = true
	}
	keywords := card.Keywords
	if len(keywords) == 0 {
		keywords = cards.DetectKeywords(card.OracleText)
	}
	var shared []string
	for _, kw := range keywords {
		if deckKeywords[kw] {
			shared = append(shared, kw)
		}
	}
	return shared
}

// geometricMean combines bounded factors without letting their product
// saturate toward the maximum the way addition would.
func geometricMean(factors []float64) float64 {
	if len(factors) == 0 {
		return 0
	}
	product := 1.0
	for _, f := range factors {
		product *= f
	}
	return math.Pow(product, 1/float64(len(factors)))
}

// jitter derives a small deterministic offset from the card name so
// similar cards do not score mechanically identically, while the same
// input always scores the same across runs.
func jitter(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cards.NormalizeName(name)))
	// Map the hash onto [-jitterSpread, +jitterSpread].
	return (float64(h.Sum32()%1000)/999)*2*jitterSpread - jitterSpread
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
