// Package charts renders deck analysis results to interactive HTML
// charts.
package charts

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mtgkit/deckforge/internal/analysis"
)

// ChartConfig holds chart rendering configuration.
type ChartConfig struct {
	Title    string // Chart title
	Subtitle string // Chart subtitle
	Width    string // Chart width (e.g., "900px")
	Height   string // Chart height (e.g., "500px")
	Theme    string // Chart theme
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// RenderManaCurve writes a bar chart of the deck's mana curve to an
// HTML file at outputPath.
func RenderManaCurve(an *analysis.DeckAnalysis, config ChartConfig, outputPath string) error {
	if config.Title == "" {
		config.Title = "Mana Curve"
		config.Subtitle = fmt.Sprintf("%d nonland cards, average CMC %.1f", an.NonlandCards, an.AverageCMC)
	}
	return renderBar(curvePoints(an), "Cards", config, outputPath)
}

// RenderHealth writes a bar chart of the deck health components to an
// HTML file at outputPath.
func RenderHealth(an *analysis.DeckAnalysis, config ChartConfig, outputPath string) error {
	if config.Title == "" {
		config.Title = "Deck Health"
		config.Subtitle = fmt.Sprintf("Overall %.0f / 100", an.Health.Overall)
	}
	points := []DataPoint{
		{Label: "Curve", Value: an.Health.Curve},
		{Label: "Color Consistency", Value: an.Health.ColorConsistency},
		{Label: "Card Balance", Value: an.Health.CardBalance},
		{Label: "Mana Efficiency", Value: an.Health.ManaEfficiency},
		{Label: "Overall", Value: an.Health.Overall},
	}
	return renderBar(points, "Score", config, outputPath)
}

// curvePoints flattens the mana curve into ordered data points. Costs
// of seven and above collapse into one bucket.
func curvePoints(an *analysis.DeckAnalysis) []DataPoint {
	buckets := make(map[int]int)
	for cmc, count := range an.ManaCurve {
		if cmc >= 7 {
			buckets[7] += count
		} else {
			buckets[cmc] += count
		}
	}

	cmcs := make([]int, 0, len(buckets))
	for cmc := range buckets {
		cmcs = append(cmcs, cmc)
	}
	sort.Ints(cmcs)

	points := make([]DataPoint, 0, len(cmcs))
	for _, cmc := range cmcs {
		label := fmt.Sprintf("%d", cmc)
		if cmc == 7 {
			label = "7+"
		}
		points = append(points, DataPoint{Label: label, Value: float64(buckets[cmc])})
	}
	return points
}

// renderBar creates an interactive bar chart HTML file.
func renderBar(data []DataPoint, seriesName string, config ChartConfig, outputPath string) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
