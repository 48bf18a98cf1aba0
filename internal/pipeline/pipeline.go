package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/james-bowman/sparse"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/corpus"
	"github.com/reviewlens/reviewlens/internal/database"
	"github.com/reviewlens/reviewlens/internal/lexicon"
	"github.com/reviewlens/reviewlens/internal/report"
	"github.com/reviewlens/reviewlens/internal/termscore"
	"github.com/reviewlens/reviewlens/internal/vectorize"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	RunID int64
	Steps []StepResult
}

// Pipeline orchestrates the 5-step review analysis pipeline. State
// produced by one step is carried on the pipeline for the next.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB

	corpus     []string
	vocab      *vectorize.Vocabulary
	dtm        *vectorize.DTM
	tfidf      *sparse.CSR
	termScores []termscore.TermScore
	scores     *lexicon.Scores
	emotions   *lexicon.EmotionCounts
	agreements []lexicon.Agreement
}

// New creates a new pipeline. db may be nil for runs without persistence.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes the full pipeline. limit > 0 truncates the corpus after
// loading. Every step here is fatal except figure rendering, which
// degrades inside the report step.
func (p *Pipeline) Run(limit int, skipFigures bool) *Result {
	r := &Result{}

	step := p.runLoad(limit)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runVectorize()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runTermScores()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runLexiconScores(r)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runReport(skipFigures)
	r.Steps = append(r.Steps, step)

	return r
}

func (p *Pipeline) runLoad(limit int) StepResult {
	log.Println("Step 1/5: Loading corpus...")
	loader := corpus.NewLoader(p.cfg, p.db)
	result, err := loader.Load()
	if err != nil {
		return StepResult{Name: "Load", Err: err}
	}

	p.corpus = result.Corpus
	if limit > 0 && limit < len(p.corpus) {
		p.corpus = p.corpus[:limit]
	}
	return StepResult{
		Name: "Load",
		Summary: fmt.Sprintf("Loaded %d reviews (%d from CSV, %d collected, %d dropped)",
			len(p.corpus), result.CSVRows, result.FeedRows, result.DroppedRows),
	}
}

func (p *Pipeline) runVectorize() StepResult {
	log.Println("Step 2/5: Vectorizing corpus...")

	vc := p.cfg.Vectorizer
	p.vocab = vectorize.BuildVocabulary(p.corpus).
		Prune(vc.MinTermCount, vc.MinDocProportion, vc.MaxDocProportion)

	dtm, err := vectorize.BuildDTM(p.corpus, p.vocab)
	if err != nil {
		return StepResult{Name: "Vectorize", Err: err}
	}
	p.dtm = dtm

	transformer := vectorize.NewTfidfTransformer()
	tfidf, err := transformer.FitTransform(dtm)
	if err != nil {
		return StepResult{Name: "Vectorize", Err: err}
	}
	p.tfidf = tfidf

	if err := p.saveArtifacts(transformer); err != nil {
		return StepResult{Name: "Vectorize", Err: err}
	}

	return StepResult{
		Name:    "Vectorize",
		Summary: fmt.Sprintf("Built %dx%d TF-IDF matrix", len(p.corpus), p.vocab.Size()),
	}
}

// saveArtifacts persists the vocabulary and fitted transform so later
// runs can vectorize new reviews consistently.
func (p *Pipeline) saveArtifacts(t *vectorize.TfidfTransformer) error {
	dir := p.cfg.GetArtifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifacts directory: %w", err)
	}
	if err := p.vocab.Save(filepath.Join(dir, "vocabulary.json")); err != nil {
		return err
	}
	return t.SaveFile(filepath.Join(dir, "tfidf.bin"))
}

func (p *Pipeline) runTermScores() StepResult {
	log.Println("Step 3/5: Extracting term scores...")

	scores, err := termscore.ExtractWithFallback(p.tfidf, p.dtm.Terms, p.vocab.RawCounts())
	if err != nil {
		return StepResult{Name: "Term scores", Err: err}
	}
	p.termScores = scores
	return StepResult{
		Name:    "Term scores",
		Summary: fmt.Sprintf("Scored %d terms", len(scores)),
	}
}

func (p *Pipeline) runLexiconScores(r *Result) StepResult {
	log.Println("Step 4/5: Scoring sentiment...")

	set, err := lexicon.Load()
	if err != nil {
		return StepResult{Name: "Lexicon scores", Err: err}
	}

	p.scores = set.ScoreCorpus(p.corpus)
	p.emotions = set.Emotions.Count(p.corpus)
	p.agreements = lexicon.LabelAgreement(p.scores)

	if p.db != nil {
		runID, err := p.persistRun(set)
		if err != nil {
			return StepResult{Name: "Lexicon scores", Err: err}
		}
		r.RunID = runID
	}

	counts := lexicon.LabelCounts(p.scores.LabelsBing)
	return StepResult{
		Name: "Lexicon scores",
		Summary: fmt.Sprintf("Scored %d reviews: %d positive, %d neutral, %d negative (bing)",
			len(p.corpus), counts[lexicon.LabelPositive],
			counts[lexicon.LabelNeutral], counts[lexicon.LabelNegative]),
	}
}

// persistRun records run metadata, emotion totals, and per-review scores
// for collected reviews.
func (p *Pipeline) persistRun(set *lexicon.Set) (int64, error) {
	runID, err := p.db.InsertRun(len(p.corpus), p.vocab.Size(), len(p.termScores))
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	if err := p.db.InsertEmotionTotals(runID, p.emotions.Totals); err != nil {
		return 0, fmt.Errorf("recording emotion totals: %w", err)
	}

	feed, err := p.db.GetFeedReviews()
	if err != nil {
		return 0, fmt.Errorf("reading collected reviews: %w", err)
	}
	if len(feed) == 0 {
		return runID, nil
	}

	texts := make([]string, len(feed))
	for i, rev := range feed {
		texts[i] = rev.Text
	}
	scores := set.ScoreCorpus(texts)
	for i, rev := range feed {
		vader := scores.Vader[i]
		rs := database.ReviewScore{
			ReviewID:     rev.ID,
			Syuzhet:      scores.Syuzhet[i],
			Bing:         scores.Bing[i],
			Afinn:        scores.Afinn[i],
			Vader:        &vader,
			LabelSyuzhet: string(scores.LabelsSyuzhet[i]),
			LabelBing:    string(scores.LabelsBing[i]),
			LabelAfinn:   string(scores.LabelsAfinn[i]),
		}
		if err := p.db.UpsertReviewScore(rs); err != nil {
			return 0, fmt.Errorf("storing score for review %d: %w", rev.ID, err)
		}
	}
	return runID, nil
}

func (p *Pipeline) runReport(skipFigures bool) StepResult {
	log.Println("Step 5/5: Writing reports...")

	emitter := report.NewEmitter(p.cfg)
	result, err := emitter.Emit(&report.Input{
		Corpus:     p.corpus,
		TermScores: p.termScores,
		Scores:     p.scores,
		Emotions:   p.emotions,
		Agreements: p.agreements,
		VocabSize:  p.vocab.Size(),
	}, skipFigures)
	if err != nil {
		return StepResult{Name: "Report", Err: err}
	}

	summary := fmt.Sprintf("Wrote %d files", len(result.FilesWritten))
	if len(result.Skipped) > 0 {
		summary += fmt.Sprintf(" (%d figures skipped)", len(result.Skipped))
	}
	return StepResult{Name: "Report", Summary: summary}
}
