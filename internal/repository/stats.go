package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/inkpress/printflow/internal/domain"
)

// StatsFilters holds filters for statistics queries.
type StatsFilters struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Team        *string // Optional: filter by assigned team
}

// ShopStatsResult holds overall shop statistics.
type ShopStatsResult struct {
	TotalTasksCreated int
	TasksByStatus     map[string]int
	OverdueCount      int
	DeliveredValue    float64
}

// GetShopStats retrieves overall shop statistics.
func (r *TaskRepository) GetShopStats(ctx context.Context, filters StatsFilters) (*ShopStatsResult, error) {
	teamCond := ""
	baseArgs := []interface{}{filters.PeriodStart, filters.PeriodEnd}
	if filters.Team != nil {
		teamCond = " AND assigned_team = $3"
		baseArgs = append(baseArgs, *filters.Team)
	}

	// Get total tasks created in period
	var totalCreated int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tasks
		WHERE created_at >= $1 AND created_at <= $2`+teamCond,
		baseArgs...,
	).Scan(&totalCreated)
	if err != nil {
		return nil, fmt.Errorf("count total tasks: %w", err)
	}

	// Get tasks by status (current state, not historical)
	tasksByStatus := make(map[string]int)
	statusQuery := "SELECT status, COUNT(*) FROM tasks"
	var statusArgs []interface{}
	if filters.Team != nil {
		statusQuery += " WHERE assigned_team = $1"
		statusArgs = append(statusArgs, *filters.Team)
	}
	statusQuery += " GROUP BY status"

	rows, err := r.pool.Query(ctx, statusQuery, statusArgs...)
	if err != nil {
		return nil, fmt.Errorf("query tasks by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		tasksByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}

	// Get overdue count (open tasks past their due date)
	overdueQuery := `
		SELECT COUNT(*)
		FROM tasks
		WHERE due_date < NOW()
		  AND status NOT IN ($1, $2)`
	overdueArgs := []interface{}{domain.StatusDelivered, domain.StatusCancelled}
	if filters.Team != nil {
		overdueQuery += " AND assigned_team = $3"
		overdueArgs = append(overdueArgs, *filters.Team)
	}

	var overdueCount int
	if err := r.pool.QueryRow(ctx, overdueQuery, overdueArgs...).Scan(&overdueCount); err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}

	// Get value delivered in period
	deliveredQuery := `
		SELECT COALESCE(SUM(COALESCE(actual_value, estimated_value)), 0)
		FROM tasks
		WHERE status = $1
		  AND completed_at >= $2 AND completed_at <= $3`
	deliveredArgs := []interface{}{domain.StatusDelivered, filters.PeriodStart, filters.PeriodEnd}
	if filters.Team != nil {
		deliveredQuery += " AND assigned_team = $4"
		deliveredArgs = append(deliveredArgs, *filters.Team)
	}

	var deliveredValue float64
	if err := r.pool.QueryRow(ctx, deliveredQuery, deliveredArgs...).Scan(&deliveredValue); err != nil {
		return nil, fmt.Errorf("sum delivered value: %w", err)
	}

	return &ShopStatsResult{
		TotalTasksCreated: totalCreated,
		TasksByStatus:     tasksByStatus,
		OverdueCount:      overdueCount,
		DeliveredValue:    deliveredValue,
	}, nil
}
