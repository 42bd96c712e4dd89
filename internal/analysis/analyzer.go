// Package analysis derives a structural profile of a deck: colors,
// mana curve, archetype, themes and a health score. Analyze is a pure
// function with no I/O; the profile is recomputed on demand and never
// persisted.
package analysis

import (
	"sort"
	"strings"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

// Strategy tags describe how the deck wants to play.
const (
	StrategyAggro      = "aggro"
	StrategyControl    = "control"
	StrategyMidrange   = "midrange"
	StrategyRamp       = "ramp"
	StrategyMulticolor = "multicolor"
)

// Archetype tags classify the deck for recommendation targeting.
const (
	ArchetypeAggro    = "aggro"
	ArchetypeControl  = "control"
	ArchetypeMidrange = "midrange"
	ArchetypeCombo    = "combo"
	ArchetypeRamp     = "ramp"
)

// ThemeKind distinguishes tribal themes from mechanical ones.
type ThemeKind string

const (
	// ThemeTribal is a creature-type theme, e.g. "Elf".
	ThemeTribal ThemeKind = "tribal"
	// ThemeMechanic is a rules-text theme, e.g. "graveyard".
	ThemeMechanic ThemeKind = "mechanic"
)

// Theme is one detected deck theme, weighted by how many cards carry it.
type Theme struct {
	Name   string    `json:"name"`
	Kind   ThemeKind `json:"kind"`
	Weight int       `json:"weight"`
}

// Health scores deck construction quality. All values are in [0,100].
type Health struct {
	Curve            float64 `json:"curve"`
	ColorConsistency float64 `json:"colorConsistency"`
	CardBalance      float64 `json:"cardBalance"`
	ManaEfficiency   float64 `json:"manaEfficiency"`
	Overall          float64 `json:"overall"`
}

// DeckAnalysis is the derived structural profile of a deck.
type DeckAnalysis struct {
	Strategy      string         `json:"strategy"`
	Archetype     string         `json:"archetype"`
	Colors        []string       `json:"colors"`
	PrimaryColors []string       `json:"primaryColors"`
	ManaCurve     map[int]int    `json:"manaCurve"`
	Types         map[string]int `json:"types"`
	Themes        []Theme        `json:"themes"`
	Keywords      []string       `json:"keywords"`
	AverageCMC    float64        `json:"averageCMC"`
	TotalCards    int            `json:"totalCards"`
	NonlandCards  int            `json:"nonlandCards"`
	Health        Health         `json:"health"`
}

// CreatureRatio is the weighted share of creatures among nonland cards.
func (a *DeckAnalysis) CreatureRatio() float64 {
	if a.NonlandCards == 0 {
		return 0
	}
	return float64(a.Types["Creature"]) / float64(a.NonlandCards)
}

// SpellRatio is the weighted share of instants and sorceries among
// nonland cards.
func (a *DeckAnalysis) SpellRatio() float64 {
	if a.NonlandCards == 0 {
		return 0
	}
	return float64(a.Types["Instant"]+a.Types["Sorcery"]) / float64(a.NonlandCards)
}

// HasTheme reports whether a named theme was detected.
func (a *DeckAnalysis) HasTheme(name string) bool {
	for _, th := range a.Themes {
		if th.Name == name {
			return true
		}
	}
	return false
}

// mechanicThemes maps theme names to the rules-text fragments that
// indicate them.
var mechanicThemes = map[string][]string{
	"graveyard":    {"graveyard"},
	"sacrifice":    {"sacrifice"},
	"draw":         {"draw a card", "draw two", "draw three", "draws a card"},
	"ramp":         {"search your library for a land", "search your library for a basic", "add {"},
	"tokens":       {"token"},
	"counters":     {"+1/+1 counter"},
	"lifegain":     {"gain life", "lifelink", "you gain"},
	"counterspell": {"counter target"},
	"tutor":        {"search your library for a card"},
	"spells":       {"instant or sorcery", "whenever you cast"},
}

// tribalThreshold is the weighted copy count at which a shared creature
// type becomes a deck theme.
const tribalThreshold = 6

// Analyze computes the deck's structural profile. Only the mainboard is
// analyzed; an empty deck yields an all-zero analysis.
func Analyze(d *deck.Deck) *DeckAnalysis {
	a := &DeckAnalysis{
		Strategy:  StrategyMidrange,
		Archetype: ArchetypeMidrange,
		ManaCurve: make(map[int]int),
		Types:     make(map[string]int),
	}
	if d == nil {
		a.Strategy = ""
		a.Archetype = ""
		return a
	}

	colorCounts := make(map[string]int)
	keywordCounts := make(map[string]int)
	mechanicCounts := make(map[string]int)
	tribeCounts := make(map[string]int)
	totalCMC := 0

	for _, dc := range d.Mainboard() {
		qty := dc.Quantity
		if qty < 1 {
			qty = 1
		}
		card := dc.Card
		a.TotalCards += qty

		a.Types[card.PrimaryType()] += qty

		for _, color := range card.Colors {
			colorCounts[color] += qty
		}
		// Color identity is a superset of the cast colors; off-color
		// rules text (activation costs, hybrid symbols) still anchors
		// the deck's colors for singleton scoring.
		for _, color := range card.ColorIdentity {
			if !hasColor(card.Colors, color) {
				colorCounts[color] += qty
			}
		}

		if !card.IsLand() {
			a.ManaCurve[card.CMC] += qty
			totalCMC += card.CMC * qty
			a.NonlandCards += qty
		}

		keywords := card.Keywords
		if len(keywords) == 0 {
			keywords = cards.DetectKeywords(card.OracleText)
		}
		for _, kw := range keywords {
			keywordCounts[kw] += qty
		}

		haystack := strings.ToLower(card.Name + "\n" + card.OracleText)
		for theme, needles := range mechanicThemes {
			for _, needle := range needles {
				if strings.Contains(haystack, needle) {
					mechanicCounts[theme] += qty
					break
				}
			}
		}

		for _, tribe := range card.CreatureTypes() {
			tribeCounts[tribe] += qty
		}
	}

	if a.TotalCards == 0 {
		a.Strategy = ""
		a.Archetype = ""
		return a
	}

	if a.NonlandCards > 0 {
		a.AverageCMC = float64(totalCMC) / float64(a.NonlandCards)
	}

	a.Colors = sortedColors(colorCounts)
	a.PrimaryColors = primaryColors(colorCounts, 2)
	a.Keywords = sortedKeys(keywordCounts)
	a.Themes = buildThemes(mechanicCounts, tribeCounts)
	a.Archetype = classifyArchetype(a, mechanicCounts)
	a.Strategy = classifyStrategy(a)
	a.Health = scoreHealth(a)

	return a
}

// classifyArchetype applies threshold rules over the aggregates. The
// first matching rule wins; midrange is the default.
func classifyArchetype(a *DeckAnalysis, mechanics map[string]int) string {
	creatureRatio := a.CreatureRatio()
	earlyShare := 0.0
	if a.NonlandCards > 0 {
		earlyShare = float64(a.ManaCurve[0]+a.ManaCurve[1]+a.ManaCurve[2]) / float64(a.NonlandCards)
	}

	switch {
	case creatureRatio > 0.6 && a.AverageCMC < 3:
		return ArchetypeAggro
	case creatureRatio >= 0.45 && a.AverageCMC < 3 && earlyShare >= 0.45:
		// Burn-style lists run fewer creatures but a very low curve.
		return ArchetypeAggro
	case mechanics["counterspell"] > 0 || (mechanics["draw"] >= 4 && a.SpellRatio() > 0.3):
		return ArchetypeControl
	case a.AverageCMC > 4 && mechanics["ramp"] > 0:
		return ArchetypeRamp
	case mechanics["tutor"] >= 2 && creatureRatio < 0.4:
		return ArchetypeCombo
	default:
		return ArchetypeMidrange
	}
}

// classifyStrategy derives the strategy tag. Three or more colors mark
// the deck multicolor regardless of archetype; combo plays out as a
// midrange game plan.
func classifyStrategy(a *DeckAnalysis) string {
	if len(a.Colors) >= 3 {
		return StrategyMulticolor
	}
	if a.Archetype == ArchetypeCombo {
		return StrategyMidrange
	}
	return a.Archetype
}

// scoreHealth computes the four health sub-scores and their mean.
func scoreHealth(a *DeckAnalysis) Health {
	h := Health{
		Curve:            curveHealth(a.ManaCurve),
		ColorConsistency: colorConsistency(len(a.Colors)),
		CardBalance:      cardBalance(a.CreatureRatio(), a.SpellRatio()),
		ManaEfficiency:   manaEfficiency(a.AverageCMC),
	}
	h.Overall = (h.Curve + h.ColorConsistency + h.CardBalance + h.ManaEfficiency) / 4
	return h
}

// curveHealth compares early/mid/late proportions against an ideal
// 30/40/30 split. Each bucket scores max(0, 100 - |actual-ideal|*200).
func curveHealth(curve map[int]int) float64 {
	early := curve[1] + curve[2]
	mid := curve[3] + curve[4]
	late := curve[5] + curve[6]
	total := early + mid + late
	if total == 0 {
		return 0
	}

	ideal := []float64{0.30, 0.40, 0.30}
	actual := []float64{
		float64(early) / float64(total),
		float64(mid) / float64(total),
		float64(late) / float64(total),
	}

	sum := 0.0
	for i := range ideal {
		score := 100 - abs(actual[i]-ideal[i])*200
		if score < 0 {
			score = 0
		}
		sum += score
	}
	return sum / 3
}

// colorConsistency is a step function of how many colors the deck runs.
func colorConsistency(colorCount int) float64 {
	switch {
	case colorCount <= 2:
		return 90
	case colorCount == 3:
		return 70
	case colorCount == 4:
		return 50
	default:
		return 30
	}
}

// cardBalance rewards a creature ratio near 0.5 and a spell ratio near
// 0.3.
func cardBalance(creatureRatio, spellRatio float64) float64 {
	creatureScore := 100 - abs(creatureRatio-0.5)*200
	if creatureScore < 0 {
		creatureScore = 0
	}
	spellScore := 100 - abs(spellRatio-0.3)*200
	if spellScore < 0 {
		spellScore = 0
	}
	return (creatureScore + spellScore) / 2
}

// manaEfficiency rewards an average CMC inside [2.5, 3.5]; outside the
// band the score drops by 30 per point of distance.
func manaEfficiency(avgCMC float64) float64 {
	if avgCMC == 0 {
		return 0
	}
	var dist float64
	switch {
	case avgCMC < 2.5:
		dist = 2.5 - avgCMC
	case avgCMC > 3.5:
		dist = avgCMC - 3.5
	}
	score := 100 - dist*30
	if score < 0 {
		return 0
	}
	return score
}

// buildThemes merges mechanical and tribal themes, most salient first.
func buildThemes(mechanics, tribes map[string]int) []Theme {
	var themes []Theme
	for name, weight := range mechanics {
		if weight >= 3 {
			themes = append(themes, Theme{Name: name, Kind: ThemeMechanic, Weight: weight})
		}
	}
	for tribe, weight := range tribes {
		if weight >= tribalThreshold {
			themes = append(themes, Theme{Name: tribe, Kind: ThemeTribal, Weight: weight})
		}
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Weight != themes[j].Weight {
			return themes[i].Weight > themes[j].Weight
		}
		return themes[i].Name < themes[j].Name
	})
	return themes
}

func hasColor(colors []string, color string) bool {
	for _, c := range colors {
		if c == color {
			return true
		}
	}
	return false
}

// sortedColors returns the present colors in canonical WUBRG order.
func sortedColors(colorCounts map[string]int) []string {
	var present []string
	for _, color := range []string{"W", "U", "B", "R", "G"} {
		if colorCounts[color] > 0 {
			present = append(present, color)
		}
	}
	return present
}

// primaryColors returns the top n colors by weighted count.
func primaryColors(colorCounts map[string]int, n int) []string {
	type cc struct {
		color string
		count int
	}
	var counts []cc
	for color, count := range colorCounts {
		if count > 0 {
			counts = append(counts, cc{color, count})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].color < counts[j].color
	})

	var primary []string
	for i := 0; i < n && i < len(counts); i++ {
		primary = append(primary, counts[i].color)
	}
	return primary
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
