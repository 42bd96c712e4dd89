package charts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mtgkit/deckforge/internal/analysis"
)

func sampleAnalysis() *analysis.DeckAnalysis {
	return &analysis.DeckAnalysis{
		AverageCMC:   2.7,
		NonlandCards: 36,
		ManaCurve:    map[int]int{1: 8, 2: 12, 3: 8, 4: 4, 6: 2, 8: 2},
		Health: analysis.Health{
			Curve:            73.3,
			ColorConsistency: 90,
			CardBalance:      80,
			ManaEfficiency:   100,
			Overall:          85.8,
		},
	}
}

func TestCurvePointsBuckets(t *testing.T) {
	points := curvePoints(sampleAnalysis())

	last := points[len(points)-1]
	if last.Label != "7+" {
		t.Errorf("expected 7+ bucket last, got %q", last.Label)
	}
	if last.Value != 2 {
		t.Errorf("expected 8-cost cards folded into 7+ bucket, got %f", last.Value)
	}

	for i := 1; i < len(points)-1; i++ {
		if points[i-1].Label >= points[i].Label {
			t.Errorf("curve points not ordered: %v", points)
		}
	}
}

func TestRenderManaCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.html")
	if err := RenderManaCurve(sampleAnalysis(), DefaultChartConfig(), path); err != nil {
		t.Fatalf("RenderManaCurve failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read rendered chart: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "Mana Curve") {
		t.Error("rendered chart missing default title")
	}
	if !strings.Contains(html, "echarts") {
		t.Error("rendered chart missing echarts payload")
	}
}

func TestRenderHealth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health.html")
	if err := RenderHealth(sampleAnalysis(), DefaultChartConfig(), path); err != nil {
		t.Fatalf("RenderHealth failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read rendered chart: %v", err)
	}
	if !strings.Contains(string(data), "Deck Health") {
		t.Error("rendered chart missing default title")
	}
}

func TestRenderBadPath(t *testing.T) {
	err := RenderHealth(sampleAnalysis(), DefaultChartConfig(), filepath.Join(t.TempDir(), "missing", "health.html"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
