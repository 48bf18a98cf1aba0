package corpus

import (
	"log"
	"time"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/database"
)

// CollectResult holds the results of a feed collection run.
type CollectResult struct {
	TotalFound int
	NewReviews int
	Duplicates int
	Fetched    int
	Sources    map[string]int
}

// Collector gathers guest reviews from configured feeds into the database.
type Collector struct {
	cfg     *config.Config
	db      *database.DB
	fetcher *PageFetcher
}

// NewCollector creates a new review collector.
func NewCollector(cfg *config.Config, db *database.DB) *Collector {
	return &Collector{
		cfg:     cfg,
		db:      db,
		fetcher: NewPageFetcher(15 * time.Second),
	}
}

// Collect parses all configured feeds, fetches full text where an entry
// only carries a link, and stores new reviews. Duplicate URLs are skipped.
func (c *Collector) Collect() *CollectResult {
	result := &CollectResult{Sources: make(map[string]int)}

	parser := NewFeedParser(c.cfg.Input.Feeds)
	entries := parser.ParseAll()
	result.TotalFound = len(entries)

	for _, entry := range entries {
		text := entry.Text
		rawText := entry.Text

		if text == "" {
			fetched, err := c.fetcher.FetchText(entry.URL)
			if err != nil {
				log.Printf("Fetch failed for %s: %v", entry.URL, err)
				continue
			}
			if fetched == "" {
				continue
			}
			rawText = fetched
			text = fetched
			result.Fetched++
		}

		cleaned := Clean(text)
		if cleaned == "" {
			continue
		}

		entryURL := entry.URL
		id, err := c.db.InsertReview(entry.Source, cleaned, &entryURL, &rawText)
		if err != nil {
			log.Printf("Failed to store review from %s: %v", entry.URL, err)
			continue
		}
		if id == 0 {
			result.Duplicates++
			continue
		}
		result.NewReviews++
		result.Sources[entry.Source]++
	}

	log.Printf("Collection complete: %d found, %d new, %d duplicates",
		result.TotalFound, result.NewReviews, result.Duplicates)
	return result
}
