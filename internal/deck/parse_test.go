package deck

import (
	"strings"
	"testing"
)

func TestParseDeckList(t *testing.T) {
	input := `// Mono red
Deck
4 Monastery Swiftspear
4x Shock
Embercleave

Sideboard
2 Abrade
`
	d, err := ParseDeckList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDeckList failed: %v", err)
	}

	if len(d.Cards) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(d.Cards))
	}

	main := d.Mainboard()
	if len(main) != 3 {
		t.Errorf("expected 3 mainboard entries, got %d", len(main))
	}
	if main[0].Card.Name != "Monastery Swiftspear" || main[0].Quantity != 4 {
		t.Errorf("unexpected first entry: %+v", main[0])
	}
	if main[1].Quantity != 4 {
		t.Errorf("expected x-suffix quantity parsed, got %+v", main[1])
	}
	if main[2].Card.Name != "Embercleave" || main[2].Quantity != 1 {
		t.Errorf("expected bare name to default to 1 copy, got %+v", main[2])
	}

	side := d.Cards[3]
	if side.Zone != ZoneSideboard || side.Card.Name != "Abrade" || side.Quantity != 2 {
		t.Errorf("unexpected sideboard entry: %+v", side)
	}
}

func TestParseDeckListBlankLineSwitchesZone(t *testing.T) {
	input := "4 Shock\n\n2 Abrade\n"
	d, err := ParseDeckList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDeckList failed: %v", err)
	}
	if d.Cards[1].Zone != ZoneSideboard {
		t.Errorf("expected blank line to start sideboard, got %+v", d.Cards[1])
	}
}

func TestParseDeckListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"comments only", "// nothing\n# here\n"},
		{"zero quantity", "0 Shock\n"},
		{"count without name", "4\n"},
	}
	for _, tt := range tests {
		if _, err := ParseDeckList(strings.NewReader(tt.input)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
