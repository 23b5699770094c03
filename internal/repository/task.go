package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkpress/printflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "description", "client_name", "client_contact",
	"priority", "status", "assigned_team", "assignee_id", "creator_id",
	"due_date", "estimated_value", "actual_value", "completed_at",
	"specification", "attachments", "created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var specJSON []byte
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.ClientName,
		&task.ClientContact,
		&task.Priority,
		&task.Status,
		&task.AssignedTeam,
		&task.AssigneeID,
		&task.CreatorID,
		&task.DueDate,
		&task.EstimatedValue,
		&task.ActualValue,
		&task.CompletedAt,
		&specJSON,
		&task.Attachments,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	if err := json.Unmarshal(specJSON, &task.Specification); err != nil {
		return nil, fmt.Errorf("parse specification: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDTx retrieves a task by ID within a transaction. The read takes
// no row lock: a concurrent transition that commits first is detected by
// the conditional UpdateStatus, which must see the status read here.
func (r *TaskRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDTx query for task %s: %w", taskID, err)
	}

	return scanTask(tx.QueryRow(ctx, query, args...))
}

// UpdateStatus updates the task status conditioned on the expected
// current status. Returns ErrConflict if the task was modified in the
// meantime (expectedCurrent no longer matches).
func (r *TaskRepository) UpdateStatus(
	ctx context.Context,
	tx pgx.Tx,
	taskID string,
	expectedCurrent domain.TaskStatus,
	newStatus domain.TaskStatus,
	completedAt *time.Time,
) error {
	qb := psql.
		Update("tasks").
		Set("status", newStatus).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     taskID,
			"status": expectedCurrent,
		})
	if completedAt != nil {
		qb = qb.Set("completed_at", completedAt)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for task %s: %w", taskID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	return nil
}

// Create creates a new task in the database within a transaction.
// Returns the created task with ID, CreatedAt, and UpdatedAt populated.
func (r *TaskRepository) Create(ctx context.Context, tx pgx.Tx, task *domain.Task) (*domain.Task, error) {
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if task.Attachments == nil {
		task.Attachments = []string{}
	}
	if task.Specification.Finishes == nil {
		task.Specification.Finishes = []string{}
	}

	specJSON, err := json.Marshal(task.Specification)
	if err != nil {
		return nil, fmt.Errorf("marshal specification: %w", err)
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "client_name", "client_contact",
			"priority", "status", "assigned_team", "assignee_id", "creator_id",
			"due_date", "estimated_value", "specification", "attachments",
		).
		Values(
			task.Title,
			task.Description,
			task.ClientName,
			task.ClientContact,
			task.Priority,
			task.Status,
			task.AssignedTeam,
			task.AssigneeID,
			task.CreatorID,
			task.DueDate,
			task.EstimatedValue,
			specJSON,
			task.Attachments,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Delete removes a task. Notes and notifications cascade via foreign keys.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
