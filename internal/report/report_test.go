package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/lexicon"
	"github.com/reviewlens/reviewlens/internal/termscore"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Report: config.Report{WordcloudMaxTerms: 250, SampleRows: 500},
		Output: config.Output{
			DataDir:    dir,
			FiguresDir: filepath.Join(dir, "figures"),
			ReportsDir: filepath.Join(dir, "reports"),
		},
	}
}

func syntheticInput(nDocs int) *Input {
	corpus := make([]string, nDocs)
	scores := &lexicon.Scores{
		Syuzhet:       make([]float64, nDocs),
		Bing:          make([]float64, nDocs),
		Afinn:         make([]float64, nDocs),
		Vader:         make([]float64, nDocs),
		LabelsSyuzhet: make([]lexicon.Label, nDocs),
		LabelsBing:    make([]lexicon.Label, nDocs),
		LabelsAfinn:   make([]lexicon.Label, nDocs),
	}
	for i := range corpus {
		corpus[i] = fmt.Sprintf("review number %d", i)
		v := float64(i%3) - 1
		scores.Syuzhet[i] = v
		scores.Bing[i] = v
		scores.Afinn[i] = v
		scores.Vader[i] = v * 0.5
		label := lexicon.LabelFromScore(v)
		scores.LabelsSyuzhet[i] = label
		scores.LabelsBing[i] = label
		scores.LabelsAfinn[i] = label
	}
	return &Input{
		Corpus: corpus,
		TermScores: []termscore.TermScore{
			{Term: "room", Score: 0.9},
			{Term: "staff", Score: 0.7},
			{Term: "clean", Score: 0.4},
		},
		Scores:    scores,
		VocabSize: 3,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return records
}

func TestSampleCSVRowCap(t *testing.T) {
	tests := []struct {
		docs     int
		wantRows int
	}{
		{3, 3},
		{500, 500},
		{750, 500},
	}
	for _, tt := range tests {
		cfg := testConfig(t)
		e := NewEmitter(cfg)
		in := syntheticInput(tt.docs)
		if _, err := e.Emit(in, true); err != nil {
			t.Fatalf("Emit(%d docs): %v", tt.docs, err)
		}

		records := readCSV(t, filepath.Join(cfg.Output.ReportsDir, "sample_scores.csv"))
		if got := len(records) - 1; got != tt.wantRows {
			t.Errorf("%d docs: sample CSV has %d data rows, want %d", tt.docs, got, tt.wantRows)
		}
		if len(records[0]) != 4 || records[0][0] != "Review" {
			t.Errorf("unexpected header: %v", records[0])
		}
	}
}

func TestTermScoresCSVSortedDescending(t *testing.T) {
	cfg := testConfig(t)
	e := NewEmitter(cfg)
	if _, err := e.Emit(syntheticInput(5), true); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	records := readCSV(t, filepath.Join(cfg.Output.ReportsDir, "term_scores.csv"))
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}
	prev := 0.0
	for i, rec := range records[1:] {
		score, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			t.Fatalf("row %d: bad score %q", i, rec[1])
		}
		if i > 0 && score > prev {
			t.Errorf("row %d: score %v out of descending order", i, score)
		}
		prev = score
	}
}

func TestEmitSkipFigures(t *testing.T) {
	cfg := testConfig(t)
	e := NewEmitter(cfg)
	result, err := e.Emit(syntheticInput(4), true)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	for _, f := range result.FilesWritten {
		if filepath.Ext(f) == ".html" && filepath.Dir(f) == cfg.Output.FiguresDir {
			t.Errorf("figure written despite skip flag: %s", f)
		}
	}
	for _, name := range []string{"term_scores.csv", "sample_scores.csv", "summary.md", "summary.html"} {
		path := filepath.Join(cfg.Output.ReportsDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected report file %s: %v", name, err)
		}
	}
}

func TestEmitWithFigures(t *testing.T) {
	cfg := testConfig(t)
	e := NewEmitter(cfg)

	in := syntheticInput(30)
	emotions := &lexicon.EmotionCounts{
		Categories: []string{"anger", "joy"},
		PerDoc:     [][]int{{1, 2}},
		Totals:     map[string]int{"anger": 1, "joy": 2},
	}
	in.Emotions = emotions
	in.Agreements = []lexicon.Agreement{{A: "syuzhet", B: "bing", Accuracy: 1, Kappa: 1}}

	result, err := e.Emit(in, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("unexpected skipped figures: %v", result.Skipped)
	}

	for _, name := range []string{"wordcloud.html", "top_terms.html", "sentiment_histogram.png", "sentiment_pie.html", "emotions.html"} {
		path := filepath.Join(cfg.Output.FiguresDir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected figure %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("figure %s is empty", name)
		}
	}
}

func TestWordCloudCap(t *testing.T) {
	tests := []struct {
		vocab      int
		configured int
		want       int
	}{
		{5000, 250, 250},
		{5000, 0, 250},
		{180, 250, 180},
		{180, 120, 120},
		{150, 50, 100},
		{60, 250, 60},
		{60, 10, 60},
	}
	for _, tt := range tests {
		if got := wordCloudCap(tt.vocab, tt.configured); got != tt.want {
			t.Errorf("wordCloudCap(%d, %d) = %d, want %d", tt.vocab, tt.configured, got, tt.want)
		}
	}
}

func TestSummaryContent(t *testing.T) {
	cfg := testConfig(t)
	e := NewEmitter(cfg)

	in := syntheticInput(6)
	in.Agreements = []lexicon.Agreement{{A: "bing", B: "afinn", Accuracy: 0.833, Kappa: 0.7}}
	if _, err := e.Emit(in, true); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Output.ReportsDir, "summary.md"))
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	md := string(data)
	for _, want := range []string{"| Reviews | 6 |", "bing / afinn", "room", "Mean compound score over 6 reviews"} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	html, err := os.ReadFile(filepath.Join(cfg.Output.ReportsDir, "summary.html"))
	if err != nil {
		t.Fatalf("reading summary HTML: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Error("summary HTML missing rendered table")
	}
}

func TestSummaryVaderAggregate(t *testing.T) {
	in := syntheticInput(4)
	in.Scores.Vader = []float64{0.5, 0.25, -0.25, 0.5}

	md := composeSummary(in)
	if !strings.Contains(md, "Mean compound score over 4 reviews: 0.2500") {
		t.Errorf("summary missing VADER aggregate:\n%s", md)
	}
}

func TestPieColorsMatchLabels(t *testing.T) {
	labels := []string{"negative", "neutral", "positive", "mixed"}
	want := []string{"#e03131", "#adb5bd", "#2f9e44", "#1971c2"}

	colors := pieColors(labels)
	for i, w := range want {
		if colors[i] != w {
			t.Errorf("color for %q = %s, want %s", labels[i], colors[i], w)
		}
	}
}
