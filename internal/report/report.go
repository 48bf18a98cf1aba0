// Package report renders the pipeline's figures and CSV snapshots.
// Chart rendering is best-effort: a failed figure is logged and
// skipped. CSV snapshots and the summary are required outputs; their
// failures abort the run.
package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/lexicon"
	"github.com/reviewlens/reviewlens/internal/termscore"
)

// Input carries everything the emitter renders.
type Input struct {
	Corpus     []string
	TermScores []termscore.TermScore
	Scores     *lexicon.Scores
	Emotions   *lexicon.EmotionCounts
	Agreements []lexicon.Agreement
	VocabSize  int
}

// Result lists what was written and what was skipped.
type Result struct {
	FilesWritten []string
	Skipped      []string
}

// Emitter writes figures and reports into the configured directories.
type Emitter struct {
	cfg *config.Config
}

// NewEmitter creates a report emitter.
func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{cfg: cfg}
}

// Emit writes all outputs. Figures degrade to warnings on render
// failure; CSV and summary writes are fatal.
func (e *Emitter) Emit(in *Input, skipFigures bool) (*Result, error) {
	figuresDir := e.cfg.GetFiguresDir()
	reportsDir := e.cfg.GetReportsDir()
	for _, dir := range []string{figuresDir, reportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	result := &Result{}

	termCSV := filepath.Join(reportsDir, "term_scores.csv")
	if err := writeTermScoresCSV(termCSV, in.TermScores); err != nil {
		return nil, err
	}
	result.FilesWritten = append(result.FilesWritten, termCSV)

	sampleCSV := filepath.Join(reportsDir, "sample_scores.csv")
	if err := writeSampleCSV(sampleCSV, in.Corpus, in.Scores, e.cfg.Report.SampleRows); err != nil {
		return nil, err
	}
	result.FilesWritten = append(result.FilesWritten, sampleCSV)

	if !skipFigures {
		e.emitFigures(in, figuresDir, result)
	}

	summaryPaths, err := writeSummary(reportsDir, in)
	if err != nil {
		return nil, err
	}
	result.FilesWritten = append(result.FilesWritten, summaryPaths...)

	return result, nil
}

// emitFigures renders each chart, downgrading failures to warnings.
func (e *Emitter) emitFigures(in *Input, dir string, result *Result) {
	figures := []struct {
		file   string
		render func(path string) error
	}{
		{"wordcloud.html", func(p string) error {
			return renderWordCloud(p, in.TermScores, wordCloudCap(in.VocabSize, e.cfg.Report.WordcloudMaxTerms))
		}},
		{"top_terms.html", func(p string) error {
			return renderTopTerms(p, in.TermScores, 20)
		}},
		{"sentiment_histogram.png", func(p string) error {
			return renderHistogram(p, in.Scores)
		}},
		{"sentiment_pie.html", func(p string) error {
			return renderSentimentPie(p, lexicon.LabelCounts(in.Scores.LabelsBing))
		}},
		{"emotions.html", func(p string) error {
			return renderEmotionBars(p, in.Emotions)
		}},
	}

	for _, fig := range figures {
		path := filepath.Join(dir, fig.file)
		if err := fig.render(path); err != nil {
			log.Printf("Warning: skipping figure %s: %v", fig.file, err)
			result.Skipped = append(result.Skipped, fig.file)
			continue
		}
		result.FilesWritten = append(result.FilesWritten, path)
	}
}

// wordCloudCap resolves how many terms the word cloud requests:
// min(configured, vocab), floored at 100 but never above the
// vocabulary size.
func wordCloudCap(vocabSize, configured int) int {
	if configured <= 0 {
		configured = 250
	}
	n := configured
	if vocabSize < n {
		n = vocabSize
	}
	if n < 100 {
		n = 100
		if vocabSize < 100 {
			n = vocabSize
		}
	}
	return n
}

// writeTermScoresCSV writes the full term-score table, already sorted
// descending by score.
func writeTermScoresCSV(path string, scores []termscore.TermScore) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating term score CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"term", "score"}); err != nil {
		return fmt.Errorf("writing term score CSV: %w", err)
	}
	for _, s := range scores {
		record := []string{s.Term, strconv.FormatFloat(s.Score, 'g', -1, 64)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing term score CSV: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// writeSampleCSV writes per-document lexicon scores for the first
// min(maxRows, corpus size) reviews.
func writeSampleCSV(path string, corpus []string, scores *lexicon.Scores, maxRows int) error {
	if maxRows <= 0 {
		maxRows = 500
	}
	n := len(corpus)
	if maxRows < n {
		n = maxRows
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sample score CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Review", "syuzhet", "bing", "afinn"}); err != nil {
		return fmt.Errorf("writing sample score CSV: %w", err)
	}
	for i := 0; i < n; i++ {
		record := []string{
			corpus[i],
			strconv.FormatFloat(scores.Syuzhet[i], 'g', -1, 64),
			strconv.FormatFloat(scores.Bing[i], 'g', -1, 64),
			strconv.FormatFloat(scores.Afinn[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing sample score CSV: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
