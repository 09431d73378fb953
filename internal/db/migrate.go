package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillWordCounts(db); err != nil {
		return fmt.Errorf("backfilling word counts: %w", err)
	}
	return nil
}

// migrateBackfillWordCounts fills word_count for works stored before the
// column existed.
func migrateBackfillWordCounts(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT id, text FROM works WHERE word_count = 0 AND text <> ''`)
	if err != nil {
		return fmt.Errorf("listing works: %w", err)
	}
	type pending struct {
		id    string
		count int
	}
	var updates []pending
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			rows.Close()
			return err
		}
		updates = append(updates, pending{id: id, count: len(strings.Fields(text))})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, u := range updates {
		if _, err := db.ExecContext(ctx,
			`UPDATE works SET word_count = ? WHERE id = ? AND word_count = 0`, u.count, u.id); err != nil {
			return fmt.Errorf("updating work %s: %w", u.id, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS works (
		id         TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		title      TEXT NOT NULL,
		work_type  TEXT NOT NULL DEFAULT 'essay'
		           CHECK(work_type IN ('essay','exam','homework','project','other')),
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_works_student ON works(student_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS analyses (
		id                TEXT PRIMARY KEY,
		work_id           TEXT NOT NULL UNIQUE REFERENCES works(id) ON DELETE CASCADE,
		mode              TEXT NOT NULL
		                  CHECK(mode IN ('elementary','highschool','university')),
		score_structure   INTEGER NOT NULL CHECK(score_structure BETWEEN 0 AND 5),
		score_clarity     INTEGER NOT NULL CHECK(score_clarity BETWEEN 0 AND 5),
		score_evidence    INTEGER NOT NULL CHECK(score_evidence BETWEEN 0 AND 5),
		score_originality INTEGER NOT NULL CHECK(score_originality BETWEEN 0 AND 5),
		score_coherence   INTEGER NOT NULL CHECK(score_coherence BETWEEN 0 AND 5),
		result_json       TEXT NOT NULL,
		wellbeing_enabled INTEGER NOT NULL DEFAULT 0,
		wellbeing_level   TEXT CHECK(wellbeing_level IN ('none','mild','flag')),
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_analyses_wellbeing ON analyses(wellbeing_level)`,

	// Word counts were added after the first release.
	`ALTER TABLE works ADD COLUMN word_count INTEGER NOT NULL DEFAULT 0`,

	// Run metadata.
	`ALTER TABLE analyses ADD COLUMN llm_model TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE analyses ADD COLUMN processing_time_ms INTEGER NOT NULL DEFAULT 0`,

	// Talent signals stored apart from the envelope for dashboards.
	`ALTER TABLE analyses ADD COLUMN talent_json TEXT NOT NULL DEFAULT '{}'`,
}
