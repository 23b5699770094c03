package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkpress/printflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepository handles database operations for task notes.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create appends a note to a task within a transaction.
func (r *NoteRepository) Create(ctx context.Context, tx pgx.Tx, note *domain.Note) (*domain.Note, error) {
	query, args, err := psql.
		Insert("task_notes").
		Columns("task_id", "author_id", "author_name", "message", "kind").
		Values(note.TaskID, note.AuthorID, note.AuthorName, note.Message, note.Kind).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for note: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

// GetByTaskID retrieves all notes for a task, oldest first.
func (r *NoteRepository) GetByTaskID(ctx context.Context, taskID string) ([]*domain.Note, error) {
	query, args, err := psql.
		Select("id", "task_id", "author_id", "author_name", "message", "kind", "created_at").
		From("task_notes").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByTaskID query for notes: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		err := rows.Scan(
			&note.ID,
			&note.TaskID,
			&note.AuthorID,
			&note.AuthorName,
			&note.Message,
			&note.Kind,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return notes, nil
}
