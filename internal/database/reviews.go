package database

import (
	"database/sql"
)

// InsertReview inserts a review. Returns the ID on success, 0 if the URL
// is a duplicate of an already collected review.
func (db *DB) InsertReview(source, text string, url, rawText *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO reviews (source, text, url, raw_text) VALUES (?, ?, ?, ?)`,
		source, text, url, rawText,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetAllReviews returns every review ordered by insertion.
func (db *DB) GetAllReviews() ([]Review, error) {
	rows, err := db.conn.Query(
		`SELECT id, source, url, text, raw_text, collected_at FROM reviews ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// GetFeedReviews returns reviews collected from feeds, ordered by insertion.
func (db *DB) GetFeedReviews() ([]Review, error) {
	rows, err := db.conn.Query(
		`SELECT id, source, url, text, raw_text, collected_at
		FROM reviews WHERE source != 'csv' ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Source, &r.URL, &r.Text, &r.RawText, &r.CollectedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
