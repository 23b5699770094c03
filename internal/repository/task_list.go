package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkpress/printflow/internal/domain"
)

// priorityOrder sorts urgent first, low last.
const priorityOrder = "CASE priority WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 WHEN 'low' THEN 4 END"

// sortableFields maps accepted sort keys to their ORDER BY expression.
// Sort keys come from the query string; anything outside this map never
// reaches SQL.
var sortableFields = map[string]string{
	"priority":        priorityOrder,
	"due_date":        "due_date",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
	"status":          "status",
	"title":           "title",
	"estimated_value": "estimated_value",
}

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	Statuses   []string // Optional: filter by status
	Team       *string  // Optional: filter by assigned team
	CreatorID  *string  // Optional: filter by creator
	AssigneeID *string  // Optional: filter by assignee
	Priorities []string // Optional: filter by priority
	Overdue    bool     // Optional: show only overdue, not yet completed
	Sort       []string // Optional: sort fields (with - prefix for DESC)
	Limit      int      // Required: page size
	Offset     int      // Required: page offset
}

// TaskListResult holds a task with computed fields.
type TaskListResult struct {
	Task      *domain.Task
	IsOverdue bool
}

func applyTaskFilters(qb sq.SelectBuilder, filters TaskListFilters) sq.SelectBuilder {
	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": filters.Statuses})
	}
	if filters.Team != nil {
		qb = qb.Where(sq.Eq{"assigned_team": *filters.Team})
	}
	if filters.CreatorID != nil {
		qb = qb.Where(sq.Eq{"creator_id": *filters.CreatorID})
	}
	if filters.AssigneeID != nil {
		qb = qb.Where(sq.Eq{"assignee_id": *filters.AssigneeID})
	}
	if len(filters.Priorities) > 0 {
		qb = qb.Where(sq.Eq{"priority": filters.Priorities})
	}
	if filters.Overdue {
		qb = qb.Where("due_date < NOW()")
		qb = qb.Where(sq.NotEq{"status": []string{
			string(domain.StatusDelivered),
			string(domain.StatusCancelled),
		}})
	}
	return qb
}

// List retrieves tasks with filters and pagination.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]TaskListResult, int, error) {
	qb := applyTaskFilters(psql.Select(taskColumns...).From("tasks"), filters)

	// Apply sorting; unknown fields are skipped. Default: priority, due_date.
	sorted := false
	for _, sort := range filters.Sort {
		field, direction := sort, " ASC"
		if strings.HasPrefix(sort, "-") {
			field, direction = sort[1:], " DESC"
		}
		expr, ok := sortableFields[field]
		if !ok {
			continue
		}
		qb = qb.OrderBy(expr + direction)
		sorted = true
	}
	if !sorted {
		qb = qb.OrderBy(priorityOrder + " ASC")
		qb = qb.OrderBy("due_date ASC")
	}

	qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	// Get total count (without pagination)
	countQb := applyTaskFilters(psql.Select("COUNT(*)").From("tasks"), filters)

	countQuery, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	now := time.Now()
	results := make([]TaskListResult, len(tasks))
	for i, task := range tasks {
		results[i] = TaskListResult{
			Task:      task,
			IsOverdue: task.IsOverdue(now),
		}
	}

	return results, total, nil
}
