package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/nuclea/internal/db"
	"github.com/alexanderramin/nuclea/internal/domain"
)

// SQLiteWorkRepo implements WorkRepo using a SQLite database.
type SQLiteWorkRepo struct {
	db db.DBTX
}

// NewSQLiteWorkRepo creates a new SQLiteWorkRepo. conn may be a *sql.DB or
// a transaction handed out by a UnitOfWork.
func NewSQLiteWorkRepo(conn db.DBTX) *SQLiteWorkRepo {
	return &SQLiteWorkRepo{db: conn}
}

const workColumns = `id, student_id, title, work_type, text, word_count, created_at`

func (r *SQLiteWorkRepo) Create(ctx context.Context, w *domain.Work) error {
	query := `INSERT INTO works (` + workColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.StudentID,
		w.Title,
		string(w.WorkType),
		w.Text,
		w.WordCount,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work: %w", err)
	}
	return nil
}

func (r *SQLiteWorkRepo) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	w, err := scanWork(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work: %w", err)
	}
	return w, nil
}

func (r *SQLiteWorkRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works WHERE student_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing works by student: %w", err)
	}
	defer rows.Close()

	var works []*domain.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work row: %w", err)
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating works: %w", err)
	}
	return works, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWork(s scanner) (*domain.Work, error) {
	var w domain.Work
	var workType, createdAt string
	if err := s.Scan(&w.ID, &w.StudentID, &w.Title, &workType, &w.Text, &w.WordCount, &createdAt); err != nil {
		return nil, err
	}
	w.WorkType = domain.WorkType(workType)

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	w.CreatedAt = t
	return &w, nil
}
