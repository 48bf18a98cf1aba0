package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/reviewlens/reviewlens/internal/lexicon"
	"github.com/reviewlens/reviewlens/internal/termscore"
)

// labelColors fixes the semantic color for each sentiment label.
// Unknown labels fall back to a neutral blue.
var labelColors = map[lexicon.Label]string{
	lexicon.LabelPositive: "#2f9e44",
	lexicon.LabelNegative: "#e03131",
	lexicon.LabelNeutral:  "#adb5bd",
}

const fallbackColor = "#1971c2"

// pieColors resolves the color for each label in slice order.
func pieColors(labels []string) []string {
	colors := make([]string, len(labels))
	for i, l := range labels {
		c, ok := labelColors[lexicon.Label(l)]
		if !ok {
			c = fallbackColor
		}
		colors[i] = c
	}
	return colors
}

// renderWordCloud writes an HTML word cloud of the top maxTerms terms.
func renderWordCloud(path string, scores []termscore.TermScore, maxTerms int) error {
	if len(scores) == 0 || maxTerms <= 0 {
		return fmt.Errorf("no terms to render")
	}
	if maxTerms > len(scores) {
		maxTerms = len(scores)
	}

	data := make([]opts.WordCloudData, 0, maxTerms)
	for _, s := range scores[:maxTerms] {
		data = append(data, opts.WordCloudData{Name: s.Term, Value: s.Score})
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Review vocabulary"}),
	)
	wc.AddSeries("terms", data).SetSeriesOptions(
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{14, 70},
		}),
	)

	return renderTo(path, wc.Render)
}

// renderTopTerms writes a bar chart of the top n terms by score.
func renderTopTerms(path string, scores []termscore.TermScore, n int) error {
	if len(scores) == 0 {
		return fmt.Errorf("no terms to render")
	}
	if n > len(scores) {
		n = len(scores)
	}

	terms := make([]string, 0, n)
	data := make([]opts.BarData, 0, n)
	for _, s := range scores[:n] {
		terms = append(terms, s.Term)
		data = append(data, opts.BarData{Value: s.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Top %d terms", n)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	bar.SetXAxis(terms).AddSeries("score", data)

	return renderTo(path, bar.Render)
}

// renderSentimentPie writes a percentage-labeled pie of label counts,
// with each slice colored by its label's semantic color.
func renderSentimentPie(path string, counts map[lexicon.Label]int) error {
	if len(counts) == 0 {
		return fmt.Errorf("no labels to render")
	}

	// Stable slice ordering for deterministic output.
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, string(l))
	}
	sort.Strings(labels)

	data := make([]opts.PieData, 0, len(labels))
	for _, l := range labels {
		data = append(data, opts.PieData{Name: l, Value: counts[lexicon.Label(l)]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sentiment distribution (bing)"}),
		charts.WithColorsOpts(opts.Colors(pieColors(labels))),
	)
	pie.AddSeries("sentiment", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}),
	)

	return renderTo(path, pie.Render)
}

// renderEmotionBars writes a horizontal bar chart of emotion totals.
func renderEmotionBars(path string, emotions *lexicon.EmotionCounts) error {
	if emotions == nil || len(emotions.Categories) == 0 {
		return fmt.Errorf("no emotion totals to render")
	}

	data := make([]opts.BarData, 0, len(emotions.Categories))
	for _, c := range emotions.Categories {
		data = append(data, opts.BarData{Value: emotions.Totals[c]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Emotion mentions"}),
	)
	bar.SetXAxis(emotions.Categories).AddSeries("mentions", data)
	bar.XYReversal()

	return renderTo(path, bar.Render)
}

// renderTo opens path and hands the file to a chart's Render method,
// closing the file before reporting success.
func renderTo(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating figure file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering figure: %w", err)
	}
	return f.Close()
}
