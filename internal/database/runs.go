package database

import (
	"database/sql"
	"errors"
)

// InsertRun records a completed pipeline run and returns its ID.
func (db *DB) InsertRun(corpusSize, vocabSize, termCount int) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO runs (corpus_size, vocab_size, term_count) VALUES (?, ?, ?)`,
		corpusSize, vocabSize, termCount,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetRun returns the metadata for a recorded run, or nil if unknown.
func (db *DB) GetRun(id int64) (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, corpus_size, vocab_size, term_count FROM runs WHERE id = ?`, id,
	)
	var r Run
	err := row.Scan(&r.ID, &r.StartedAt, &r.CorpusSize, &r.VocabSize, &r.TermCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// InsertEmotionTotals stores corpus-level emotion counts for a run.
func (db *DB) InsertEmotionTotals(runID int64, totals map[string]int) error {
	for emotion, total := range totals {
		_, err := db.conn.Exec(
			`INSERT INTO emotion_totals (run_id, emotion, total) VALUES (?, ?, ?)
			ON CONFLICT(run_id, emotion) DO UPDATE SET total = excluded.total`,
			runID, emotion, total,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetEmotionTotals returns the emotion totals recorded for a run,
// ordered by emotion name.
func (db *DB) GetEmotionTotals(runID int64) ([]EmotionTotal, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, emotion, total FROM emotion_totals WHERE run_id = ? ORDER BY emotion`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []EmotionTotal
	for rows.Next() {
		var et EmotionTotal
		if err := rows.Scan(&et.RunID, &et.Emotion, &et.Total); err != nil {
			return nil, err
		}
		totals = append(totals, et)
	}
	return totals, rows.Err()
}
