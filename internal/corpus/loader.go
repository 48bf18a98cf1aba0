package corpus

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/database"
)

// LoadResult holds the cleaned corpus and row accounting for a load.
type LoadResult struct {
	Corpus      []string
	CSVRows     int
	FeedRows    int
	DroppedRows int
}

// Loader reads the review corpus from CSV plus any feed-collected
// reviews stored in the database.
type Loader struct {
	cfg *config.Config
	db  *database.DB
}

// NewLoader creates a corpus loader. db may be nil when no feed
// reviews should be included.
func NewLoader(cfg *config.Config, db *database.DB) *Loader {
	return &Loader{cfg: cfg, db: db}
}

// Load reads, cleans, and filters the corpus. The CSV file and its text
// column are hard requirements: a missing file or column aborts the run
// before any downstream stage sees a partial corpus.
func (l *Loader) Load() (*LoadResult, error) {
	raw, err := readCSVColumn(l.cfg.Input.CSVPath, l.cfg.Input.TextColumn)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{CSVRows: len(raw)}

	if l.db != nil {
		feedReviews, err := l.db.GetFeedReviews()
		if err != nil {
			return nil, fmt.Errorf("reading collected reviews: %w", err)
		}
		for _, r := range feedReviews {
			raw = append(raw, r.Text)
		}
		result.FeedRows = len(feedReviews)
	}

	cleaned, dropped := CleanAll(raw)
	result.Corpus = cleaned
	result.DroppedRows = dropped

	log.Printf("Loaded corpus: %d rows before cleaning, %d after (%d dropped)",
		len(raw), len(cleaned), dropped)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("corpus is empty after cleaning %d rows of %s",
			len(raw), l.cfg.Input.CSVPath)
	}
	return result, nil
}

// readCSVColumn extracts the named text column from a CSV file.
func readCSVColumn(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reviews CSV: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return nil, fmt.Errorf("parsing reviews CSV %s: %w", path, df.Err)
	}

	found := false
	for _, name := range df.Names() {
		if name == column {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("text column %q not found in %s (columns: %v)",
			column, path, df.Names())
	}

	return df.Col(column).Records(), nil
}
