package deck

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mtgkit/deckforge/internal/cards"
)

// ParseDeckList reads a plain-text deck list of the common "4 Lightning
// Bolt" form. A "Sideboard" heading (or a blank line after the first
// cards) switches to the sideboard zone; "Deck" headings and comment
// lines are skipped. Card entries carry only name and quantity; callers
// hydrate full card data separately.
func ParseDeckList(r io.Reader) (*Deck, error) {
	d := &Deck{}
	zone := ZoneMain
	sawCards := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			if sawCards {
				zone = ZoneSideboard
			}
			continue
		case strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#"):
			continue
		}

		switch strings.ToLower(strings.TrimSuffix(line, ":")) {
		case "deck", "mainboard", "main":
			zone = ZoneMain
			continue
		case "sideboard", "side":
			zone = ZoneSideboard
			continue
		}

		quantity, name, err := parseDeckLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		d.Cards = append(d.Cards, Card{
			Card:     cards.Card{Name: name},
			Quantity: quantity,
			Zone:     zone,
		})
		sawCards = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck list: %w", err)
	}
	if len(d.Cards) == 0 {
		return nil, fmt.Errorf("deck list contains no cards")
	}
	return d, nil
}

// parseDeckLine splits one entry into quantity and card name. A leading
// count is optional and may carry an "x" suffix ("4x Shock").
func parseDeckLine(line string) (int, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("empty entry")
	}

	first := strings.TrimSuffix(strings.ToLower(fields[0]), "x")
	if quantity, err := strconv.Atoi(first); err == nil {
		if quantity < 1 {
			return 0, "", fmt.Errorf("invalid quantity %q", fields[0])
		}
		name := strings.Join(fields[1:], " ")
		if name == "" {
			return 0, "", fmt.Errorf("missing card name")
		}
		return quantity, name, nil
	}

	return 1, strings.Join(fields, " "), nil
}
