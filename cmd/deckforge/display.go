package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mtgkit/deckforge/internal/analysis"
	"github.com/mtgkit/deckforge/internal/deck"
	"github.com/mtgkit/deckforge/internal/recommend"
)

// printAnalysis renders a deck analysis as a readable report.
func printAnalysis(w io.Writer, d *deck.Deck, an *analysis.DeckAnalysis) {
	name := d.Name
	if name == "" {
		name = "Deck"
	}
	fmt.Fprintf(w, "%s (%s)\n", name, d.Format)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(name)+len(d.Format)+3))

	fmt.Fprintf(w, "Cards:       %d (%d nonland)\n", an.TotalCards, an.NonlandCards)
	fmt.Fprintf(w, "Colors:      %s\n", colorList(an.Colors))
	fmt.Fprintf(w, "Strategy:    %s\n", an.Strategy)
	fmt.Fprintf(w, "Archetype:   %s\n", an.Archetype)
	fmt.Fprintf(w, "Average CMC: %.2f\n", an.AverageCMC)

	if len(an.Themes) > 0 {
		var names []string
		for _, theme := range an.Themes {
			names = append(names, fmt.Sprintf("%s (%d)", theme.Name, theme.Weight))
		}
		fmt.Fprintf(w, "Themes:      %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "\nMana curve:\n")
	printCurve(w, an.ManaCurve)

	fmt.Fprintf(w, "\nHealth:\n")
	fmt.Fprintf(w, "  Curve             %5.1f\n", an.Health.Curve)
	fmt.Fprintf(w, "  Color consistency %5.1f\n", an.Health.ColorConsistency)
	fmt.Fprintf(w, "  Card balance      %5.1f\n", an.Health.CardBalance)
	fmt.Fprintf(w, "  Mana efficiency   %5.1f\n", an.Health.ManaEfficiency)
	fmt.Fprintf(w, "  Overall           %5.1f\n", an.Health.Overall)
}

// printCurve renders the mana curve as a text histogram.
func printCurve(w io.Writer, curve map[int]int) {
	if len(curve) == 0 {
		fmt.Fprintln(w, "  (no nonland cards)")
		return
	}

	cmcs := make([]int, 0, len(curve))
	maxCount := 0
	for cmc, count := range curve {
		cmcs = append(cmcs, cmc)
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Ints(cmcs)

	for _, cmc := range cmcs {
		count := curve[cmc]
		barLen := count
		if maxCount > 40 {
			barLen = count * 40 / maxCount
		}
		fmt.Fprintf(w, "  %2d  %-40s %d\n", cmc, strings.Repeat("#", barLen), count)
	}
}

// printRecommendations renders the ranked recommendation list.
func printRecommendations(w io.Writer, recs []recommend.SmartRecommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCARD\tTYPE\tCMC\tCONF\tSYNERGY\tCOST")
	for i, rec := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.1f\t%.1f\t%s\n",
			i+1, rec.Name, rec.Type, rec.CMC, rec.Confidence, rec.SynergyScore, rec.CostConsideration)
	}
	tw.Flush()

	fmt.Fprintln(w)
	for i, rec := range recs {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec.Name)
		for _, reason := range rec.Reasons {
			fmt.Fprintf(w, "   - %s\n", reason)
		}
	}
}

func colorList(colors []string) string {
	if len(colors) == 0 {
		return "colorless"
	}
	return strings.Join(colors, "")
}
