// Package cards defines the card model shared by the analyzer, the
// recommendation engine, and the card data cache.
package cards

import (
	"strconv"
	"strings"
)

// Card is a single Magic card as used by the engine. Instances are
// read-only once fetched; the engine never mutates them.
type Card struct {
	Name          string            `json:"name"`
	ManaCost      string            `json:"manaCost,omitempty"`
	CMC           int               `json:"cmc"`
	TypeLine      string            `json:"typeLine"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"colorIdentity,omitempty"`
	Rarity        string            `json:"rarity,omitempty"`
	OracleText    string            `json:"oracleText,omitempty"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
}

// primaryTypes is the fixed vocabulary used to extract a card's primary
// type from its type line.
var primaryTypes = []string{
	"Creature",
	"Planeswalker",
	"Instant",
	"Sorcery",
	"Artifact",
	"Enchantment",
	"Battle",
	"Land",
}

// abilityKeywords is the fixed vocabulary scanned for in oracle text.
var abilityKeywords = []string{
	"Flying", "First strike", "Double strike", "Deathtouch", "Haste",
	"Hexproof", "Indestructible", "Lifelink", "Menace", "Reach",
	"Trample", "Vigilance", "Ward", "Flash", "Defender", "Prowess",
	"Scry", "Surveil", "Landfall", "Convoke", "Flashback",
}

// NormalizeName returns the canonical form of a card name used as the
// unique key for dedup and ownership lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PrimaryType extracts the card's primary type from its type line.
// The text before the em-dash is matched against a fixed vocabulary;
// a card with no recognizable type reports "Unknown".
func (c *Card) PrimaryType() string {
	typePart := c.TypeLine
	if idx := strings.Index(typePart, "—"); idx >= 0 {
		typePart = typePart[:idx]
	}
	lower := strings.ToLower(typePart)

	for _, t := range primaryTypes {
		if strings.Contains(lower, strings.ToLower(t)) {
			return t
		}
	}
	return "Unknown"
}

// IsLand reports whether the card is a land of any kind.
func (c *Card) IsLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "land")
}

// IsBasicLand reports whether the card is a basic land, which is exempt
// from the playset limit.
func (c *Card) IsBasicLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "basic land")
}

// CreatureTypes returns the subtypes after the em-dash for creature
// cards, e.g. "Creature — Elf Druid" yields ["Elf", "Druid"].
func (c *Card) CreatureTypes() []string {
	if !strings.Contains(strings.ToLower(c.TypeLine), "creature") {
		return nil
	}
	idx := strings.Index(c.TypeLine, "—")
	if idx < 0 {
		return nil
	}
	return strings.Fields(strings.TrimSpace(c.TypeLine[idx+len("—"):]))
}

// DetectKeywords scans oracle text for ability words from the fixed
// keyword vocabulary. Matching is by case-insensitive substring, the
// same way the analyzer counts deck-wide keywords.
func DetectKeywords(oracleText string) []string {
	if oracleText == "" {
		return nil
	}
	lower := strings.ToLower(oracleText)

	var found []string
	for _, kw := range abilityKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// DeriveCMC computes a converted mana cost from a mana cost string such
// as "{2}{W}{W}" or "{X}{R}". X counts as zero. Used when the card data
// source did not supply a CMC.
func DeriveCMC(manaCost string) int {
	total := 0
	for _, symbol := range splitManaSymbols(manaCost) {
		if n, err := strconv.Atoi(symbol); err == nil {
			total += n
			continue
		}
		switch symbol {
		case "X", "Y", "Z", "":
			// Variable costs count as zero.
		default:
			// Colored, hybrid and phyrexian symbols each add one.
			total++
		}
	}
	return total
}

// splitManaSymbols breaks "{2}{W}{W}" into ["2", "W", "W"].
func splitManaSymbols(manaCost string) []string {
	var symbols []string
	var current strings.Builder
	inSymbol := false

	for _, r := range manaCost {
		switch r {
		case '{':
			inSymbol = true
			current.Reset()
		case '}':
			if inSymbol {
				symbols = append(symbols, current.String())
			}
			inSymbol = false
		default:
			if inSymbol {
				current.WriteRune(r)
			}
		}
	}
	return symbols
}

// Normalize fills derived fields that a sparse data source may omit:
// CMC from the mana cost, a type line placeholder, and the keyword list
// from oracle text. It returns the card for chaining.
func (c *Card) Normalize() *Card {
	if c.CMC == 0 && c.ManaCost != "" {
		c.CMC = DeriveCMC(c.ManaCost)
	}
	if c.TypeLine == "" {
		c.TypeLine = "Unknown"
	}
	if len(c.Keywords) == 0 {
		c.Keywords = DetectKeywords(c.OracleText)
	}
	return c
}

// SearchOptions narrows a card search issued against the card data
// service. The zero value performs an unfiltered search.
type SearchOptions struct {
	// Format restricts results to cards legal in the given format
	// (e.g. "standard", "commander"). Empty means no restriction.
	Format string

	// Order is a service-side ordering hint (e.g. "edhrec").
	Order string

	// Unique is the service's uniqueness mode (e.g. "cards").
	Unique string

	// MaxResults caps how many cards are returned from the first page.
	// Zero means the full page.
	MaxResults int
}

// Key returns a stable string form of the options for cache keying.
func (o SearchOptions) Key() string {
	return o.Format + "|" + o.Order + "|" + o.Unique + "|" + strconv.Itoa(o.MaxResults)
}
