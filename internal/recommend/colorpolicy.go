package recommend

import "strings"

// ColorPolicy is the closed set of format rules for color scoring.
// Singleton formats enforce color identity strictly; constructed
// formats degrade gracefully for partial overlap.
type ColorPolicy int

const (
	// PolicyConstructed covers 60-card formats (standard, modern, ...).
	PolicyConstructed ColorPolicy = iota
	// PolicySingleton covers commander-style formats where color
	// identity is a deckbuilding restriction, not a preference.
	PolicySingleton
)

// singletonFormats are the format names that select PolicySingleton.
var singletonFormats = map[string]bool{
	"commander":   true,
	"brawl":       true,
	"oathbreaker": true,
	"duel":        true,
	"predh":       true,
}

// PolicyForFormat selects the color policy for a format name.
func PolicyForFormat(format string) ColorPolicy {
	if singletonFormats[strings.ToLower(format)] {
		return PolicySingleton
	}
	return PolicyConstructed
}

// colorSynergy scores how well a card's color identity fits the deck's
// anchor colors, in [0,1].
//
// Under PolicySingleton a card whose identity leaves the anchors is a
// rules violation, so the score collapses to 0.02-0.05. Under
// PolicyConstructed the score ranges 0.15-0.85 with overlap.
func colorSynergy(identity, anchors []string, policy ColorPolicy) float64 {
	if len(identity) == 0 {
		// Colorless fits anywhere.
		if policy == PolicySingleton {
			return 0.85
		}
		return 0.80
	}

	anchorSet := make(map[string]bool, len(anchors))
	for _, c := range anchors {
		anchorSet[c] = true
	}

	matching := 0
	for _, c := range identity {
		if anchorSet[c] {
			matching++
		}
	}
	overlap := float64(matching) / float64(len(identity))

	if policy == PolicySingleton {
		if matching < len(identity) {
			// Identity violation: near-disqualifying.
			return 0.02 + 0.03*overlap
		}
		return 0.85
	}

	switch {
	case matching == 0:
		return 0.15
	case matching == len(identity):
		// Full fit; heavy multicolor costs a little consistency.
		score := 0.85 - 0.05*float64(len(identity)-1)
		if score < 0.65 {
			score = 0.65
		}
		return score
	default:
		// Partial fit grades between the floor and the ceiling.
		return 0.15 + 0.55*overlap
	}
}
