package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL DEFAULT 'csv',
    url TEXT,
    text TEXT NOT NULL,
    raw_text TEXT,
    collected_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS review_scores (
    review_id INTEGER PRIMARY KEY REFERENCES reviews(id),
    syuzhet REAL NOT NULL,
    bing REAL NOT NULL,
    afinn REAL NOT NULL,
    vader REAL,
    label_syuzhet TEXT NOT NULL,
    label_bing TEXT NOT NULL,
    label_afinn TEXT NOT NULL,
    scored_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT DEFAULT (datetime('now')),
    corpus_size INTEGER DEFAULT 0,
    vocab_size INTEGER DEFAULT 0,
    term_count INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS emotion_totals (
    run_id INTEGER NOT NULL REFERENCES runs(id),
    emotion TEXT NOT NULL,
    total INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, emotion)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_url ON reviews(url) WHERE url IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_reviews_source ON reviews(source);
CREATE INDEX IF NOT EXISTS idx_emotion_totals_run ON emotion_totals(run_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	latest := 0
	for _, m := range migrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}
