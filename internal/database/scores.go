package database

import (
	"database/sql"
	"errors"
)

// UpsertReviewScore stores or replaces the lexicon scores for a review.
func (db *DB) UpsertReviewScore(s ReviewScore) error {
	_, err := db.conn.Exec(
		`INSERT INTO review_scores
			(review_id, syuzhet, bing, afinn, vader, label_syuzhet, label_bing, label_afinn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(review_id) DO UPDATE SET
			syuzhet = excluded.syuzhet,
			bing = excluded.bing,
			afinn = excluded.afinn,
			vader = excluded.vader,
			label_syuzhet = excluded.label_syuzhet,
			label_bing = excluded.label_bing,
			label_afinn = excluded.label_afinn,
			scored_at = datetime('now')`,
		s.ReviewID, s.Syuzhet, s.Bing, s.Afinn, s.Vader,
		s.LabelSyuzhet, s.LabelBing, s.LabelAfinn,
	)
	return err
}

// GetReviewScore returns the stored scores for a review, or nil if unscored.
func (db *DB) GetReviewScore(reviewID int64) (*ReviewScore, error) {
	row := db.conn.QueryRow(
		`SELECT review_id, syuzhet, bing, afinn, vader,
			label_syuzhet, label_bing, label_afinn, scored_at
		FROM review_scores WHERE review_id = ?`, reviewID,
	)
	var s ReviewScore
	err := row.Scan(&s.ReviewID, &s.Syuzhet, &s.Bing, &s.Afinn, &s.Vader,
		&s.LabelSyuzhet, &s.LabelBing, &s.LabelAfinn, &s.ScoredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
