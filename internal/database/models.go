package database

// Review is a single collected guest review.
type Review struct {
	ID          int64
	Source      string // "csv" or a feed name
	URL         *string
	Text        string
	RawText     *string
	CollectedAt *string
}

// ReviewScore holds the per-lexicon sentiment scores for a review.
type ReviewScore struct {
	ReviewID     int64
	Syuzhet      float64
	Bing         float64
	Afinn        float64
	Vader        *float64
	LabelSyuzhet string
	LabelBing    string
	LabelAfinn   string
	ScoredAt     *string
}

// Run holds metadata about a completed pipeline run.
type Run struct {
	ID         int64
	StartedAt  *string
	CorpusSize int
	VocabSize  int
	TermCount  int
}

// EmotionTotal is a corpus-level emotion mention count for a run.
type EmotionTotal struct {
	RunID   int64
	Emotion string
	Total   int
}
