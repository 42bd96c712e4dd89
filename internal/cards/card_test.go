package cards

import "testing"

func TestPrimaryType(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		expected string
	}{
		{"creature with subtype", "Creature — Human Warrior", "Creature"},
		{"legendary creature", "Legendary Creature — Elf Druid", "Creature"},
		{"instant", "Instant", "Instant"},
		{"sorcery", "Sorcery", "Sorcery"},
		{"artifact creature prefers creature", "Artifact Creature — Golem", "Creature"},
		{"enchantment", "Enchantment — Aura", "Enchantment"},
		{"basic land", "Basic Land — Mountain", "Land"},
		{"planeswalker", "Legendary Planeswalker — Chandra", "Planeswalker"},
		{"empty type line", "", "Unknown"},
		{"garbage", "Conspiracy", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &Card{TypeLine: tt.typeLine}
			if got := card.PrimaryType(); got != tt.expected {
				t.Errorf("PrimaryType() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeriveCMC(t *testing.T) {
	tests := []struct {
		manaCost string
		expected int
	}{
		{"{2}{W}{W}", 4},
		{"{R}", 1},
		{"{X}{R}{R}", 2},
		{"{10}", 10},
		{"", 0},
		{"{W/U}{W/U}", 2},
		{"{2/W}{G}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.manaCost, func(t *testing.T) {
			if got := DeriveCMC(tt.manaCost); got != tt.expected {
				t.Errorf("DeriveCMC(%q) = %d, want %d", tt.manaCost, got, tt.expected)
			}
		})
	}
}

func TestDetectKeywords(t *testing.T) {
	text := "Flying, lifelink\nWhenever this creature attacks, scry 1."
	keywords := DetectKeywords(text)

	want := map[string]bool{"Flying": true, "Lifelink": true, "Scry": true}
	for _, kw := range keywords {
		delete(want, kw)
	}
	if len(want) != 0 {
		t.Errorf("DetectKeywords() missed %v (got %v)", want, keywords)
	}
}

func TestNormalizeName(t *testing.T) {
	if NormalizeName("  Lightning Bolt ") != "lightning bolt" {
		t.Error("expected trimmed lowercase name")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	card := (&Card{Name: "Mystery", ManaCost: "{1}{U}"}).Normalize()

	if card.CMC != 2 {
		t.Errorf("expected derived CMC 2, got %d", card.CMC)
	}
	if card.TypeLine != "Unknown" {
		t.Errorf("expected Unknown type line, got %q", card.TypeLine)
	}
}

func TestCreatureTypes(t *testing.T) {
	card := &Card{TypeLine: "Legendary Creature — Elf Druid"}
	types := card.CreatureTypes()
	if len(types) != 2 || types[0] != "Elf" || types[1] != "Druid" {
		t.Errorf("CreatureTypes() = %v, want [Elf Druid]", types)
	}

	spell := &Card{TypeLine: "Instant"}
	if spell.CreatureTypes() != nil {
		t.Error("expected nil creature types for an instant")
	}
}
