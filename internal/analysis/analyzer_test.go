package analysis

import (
	"testing"

	"github.com/mtgkit/deckforge/internal/cards"
	"github.com/mtgkit/deckforge/internal/deck"
)

func mainCard(c cards.Card, qty int) deck.Card {
	return deck.Card{Card: c, Quantity: qty, Zone: deck.ZoneMain}
}

// monoRedAggro builds the reference deck: 20 cheap creatures and 20
// burn spells, average CMC around 2.
func monoRedAggro() *deck.Deck {
	return &deck.Deck{
		Name:   "Red Deck Wins",
		Format: "standard",
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "Monastery Swiftspear", CMC: 1, TypeLine: "Creature — Human Monk", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Haste\nProwess"}, 4),
			mainCard(cards.Card{Name: "Robber of the Rich", CMC: 2, TypeLine: "Creature — Human Rogue", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Reach, haste"}, 4),
			mainCard(cards.Card{Name: "Anax, Hardened in the Forge", CMC: 3, TypeLine: "Legendary Creature — Demigod", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: ""}, 4),
			mainCard(cards.Card{Name: "Bonecrusher Giant", CMC: 3, TypeLine: "Creature — Giant", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: ""}, 4),
			mainCard(cards.Card{Name: "Torbran, Thane of Red Fell", CMC: 4, TypeLine: "Legendary Creature — Dwarf Noble", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: ""}, 4),
			mainCard(cards.Card{Name: "Shock", CMC: 1, TypeLine: "Instant", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Shock deals 2 damage to any target."}, 4),
			mainCard(cards.Card{Name: "Lightning Strike", CMC: 2, TypeLine: "Instant", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Lightning Strike deals 3 damage to any target."}, 4),
			mainCard(cards.Card{Name: "Skewer the Critics", CMC: 2, TypeLine: "Sorcery", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Skewer the Critics deals 3 damage to any target."}, 4),
			mainCard(cards.Card{Name: "Light Up the Stage", CMC: 3, TypeLine: "Sorcery", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Exile the top two cards of your library."}, 4),
			mainCard(cards.Card{Name: "Embercleave", CMC: 6, TypeLine: "Legendary Artifact — Equipment", Colors: []string{"R"}, ColorIdentity: []string{"R"}, OracleText: "Flash\nEquipped creature gets +1/+1 and has double strike and trample."}, 4),
		},
	}
}

func TestAnalyzeEmptyDeck(t *testing.T) {
	a := Analyze(&deck.Deck{Name: "Empty"})

	if a.TotalCards != 0 {
		t.Errorf("expected 0 total cards, got %d", a.TotalCards)
	}
	if a.Health.Overall != 0 || a.Health.Curve != 0 {
		t.Errorf("expected all-zero health, got %+v", a.Health)
	}
	if a.AverageCMC != 0 {
		t.Errorf("expected zero average CMC, got %f", a.AverageCMC)
	}
}

func TestAnalyzeNilDeck(t *testing.T) {
	a := Analyze(nil)
	if a.TotalCards != 0 {
		t.Errorf("expected zero analysis for nil deck, got %+v", a)
	}
}

func TestAnalyzeMonoRedAggro(t *testing.T) {
	a := Analyze(monoRedAggro())

	if a.TotalCards != 40 {
		t.Errorf("expected 40 cards, got %d", a.TotalCards)
	}
	if a.Archetype != ArchetypeAggro {
		t.Errorf("expected aggro archetype, got %q", a.Archetype)
	}
	if a.Strategy != StrategyAggro {
		t.Errorf("expected aggro strategy, got %q", a.Strategy)
	}
	if len(a.Colors) != 1 || a.Colors[0] != "R" {
		t.Errorf("expected mono-red, got %v", a.Colors)
	}
	if a.Health.Curve <= 60 {
		t.Errorf("expected curve health > 60, got %f", a.Health.Curve)
	}
	if a.Health.ColorConsistency != 90 {
		t.Errorf("expected color consistency 90 for mono-color, got %f", a.Health.ColorConsistency)
	}
}

func TestAnalyzeColorIdentityWidensColors(t *testing.T) {
	// Off-color activation text puts a color in the identity that the
	// mana cost never shows; it must still anchor the deck's colors.
	d := &deck.Deck{
		Name:   "Hybrid",
		Format: "commander",
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "Tattermunge Witch", CMC: 2, TypeLine: "Creature — Goblin Shaman",
				Colors: []string{"R"}, ColorIdentity: []string{"R", "G"},
				OracleText: "{R}{G}: Target creature blocks this turn if able."}, 1),
			mainCard(cards.Card{Name: "Shock", CMC: 1, TypeLine: "Instant",
				Colors: []string{"R"}, ColorIdentity: []string{"R"}}, 1),
		},
	}
	a := Analyze(d)

	if len(a.Colors) != 2 || a.Colors[0] != "R" || a.Colors[1] != "G" {
		t.Errorf("expected identity to widen colors to [R G], got %v", a.Colors)
	}
}

func TestHealthBounds(t *testing.T) {
	decks := []*deck.Deck{
		monoRedAggro(),
		{Name: "empty"},
		{Name: "one card", Cards: []deck.Card{
			mainCard(cards.Card{Name: "Colossal Dreadmaw", CMC: 6, TypeLine: "Creature — Dinosaur", Colors: []string{"G"}, OracleText: "Trample"}, 1),
		}},
	}

	for _, d := range decks {
		a := Analyze(d)
		for name, v := range map[string]float64{
			"curve":            a.Health.Curve,
			"colorConsistency": a.Health.ColorConsistency,
			"cardBalance":      a.Health.CardBalance,
			"manaEfficiency":   a.Health.ManaEfficiency,
			"overall":          a.Health.Overall,
		} {
			if v < 0 || v > 100 {
				t.Errorf("deck %q: health %s out of bounds: %f", d.Name, name, v)
			}
		}
	}
}

func TestColorConsistencySteps(t *testing.T) {
	tests := []struct {
		colors   int
		expected float64
	}{
		{1, 90}, {2, 90}, {3, 70}, {4, 50}, {5, 30},
	}
	for _, tt := range tests {
		if got := colorConsistency(tt.colors); got != tt.expected {
			t.Errorf("colorConsistency(%d) = %f, want %f", tt.colors, got, tt.expected)
		}
	}
}

func TestClassifyControl(t *testing.T) {
	d := &deck.Deck{
		Format: "standard",
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "Cancel", CMC: 3, TypeLine: "Instant", Colors: []string{"U"}, OracleText: "Counter target spell."}, 4),
			mainCard(cards.Card{Name: "Opt", CMC: 1, TypeLine: "Instant", Colors: []string{"U"}, OracleText: "Scry 1.\nDraw a card."}, 4),
			mainCard(cards.Card{Name: "Shark Typhoon", CMC: 6, TypeLine: "Enchantment", Colors: []string{"U"}, OracleText: "Whenever you cast a noncreature spell, create a Shark token."}, 2),
		},
	}
	a := Analyze(d)
	if a.Archetype != ArchetypeControl {
		t.Errorf("expected control archetype, got %q", a.Archetype)
	}
}

func TestClassifyRamp(t *testing.T) {
	d := &deck.Deck{
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "Cultivate", CMC: 3, TypeLine: "Sorcery", Colors: []string{"G"}, OracleText: "Search your library for a basic land card."}, 4),
			mainCard(cards.Card{Name: "Ulamog", CMC: 10, TypeLine: "Legendary Creature — Eldrazi", OracleText: "Indestructible"}, 4),
			mainCard(cards.Card{Name: "Terrastodon", CMC: 8, TypeLine: "Creature — Elephant", Colors: []string{"G"}, OracleText: ""}, 4),
		},
	}
	a := Analyze(d)
	if a.Archetype != ArchetypeRamp {
		t.Errorf("expected ramp archetype, got %q", a.Archetype)
	}
}

func TestMulticolorStrategy(t *testing.T) {
	d := &deck.Deck{
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "A", CMC: 3, TypeLine: "Creature — Human", Colors: []string{"W"}}, 4),
			mainCard(cards.Card{Name: "B", CMC: 3, TypeLine: "Creature — Human", Colors: []string{"U"}}, 4),
			mainCard(cards.Card{Name: "C", CMC: 3, TypeLine: "Creature — Human", Colors: []string{"B"}}, 4),
		},
	}
	a := Analyze(d)
	if a.Strategy != StrategyMulticolor {
		t.Errorf("expected multicolor strategy, got %q", a.Strategy)
	}
}

func TestTribalThemeDetected(t *testing.T) {
	d := &deck.Deck{
		Cards: []deck.Card{
			mainCard(cards.Card{Name: "Llanowar Elves", CMC: 1, TypeLine: "Creature — Elf Druid", Colors: []string{"G"}, OracleText: "{T}: Add {G}."}, 4),
			mainCard(cards.Card{Name: "Elvish Warmaster", CMC: 2, TypeLine: "Creature — Elf Warrior", Colors: []string{"G"}}, 4),
		},
	}
	a := Analyze(d)
	if !a.HasTheme("Elf") {
		t.Errorf("expected Elf tribal theme, themes: %v", a.Themes)
	}
}

func TestCurveHealthIdealSplit(t *testing.T) {
	// Exactly 30/40/30 should score 100.
	curve := map[int]int{1: 1, 2: 2, 3: 2, 4: 2, 5: 2, 6: 1}
	if got := curveHealth(curve); got != 100 {
		t.Errorf("curveHealth(ideal) = %f, want 100", got)
	}
}
