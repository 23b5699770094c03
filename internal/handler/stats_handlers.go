package handler

import (
	"net/http"
	"time"

	"github.com/inkpress/printflow/internal/handler/dto"
	"github.com/inkpress/printflow/internal/middleware"
	"github.com/inkpress/printflow/internal/repository"
)

// handleGetStats returns shop statistics for a period.
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := middleware.GetUserFromContext(ctx); err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	period := query.Get("period")
	if period == "" {
		period = "week"
	}

	now := time.Now()
	var periodStart time.Time
	switch period {
	case "day":
		periodStart = now.AddDate(0, 0, -1)
	case "week":
		periodStart = now.AddDate(0, 0, -7)
	case "month":
		periodStart = now.AddDate(0, -1, 0)
	case "all":
		periodStart = time.Time{}
	default:
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "period must be 'day', 'week', 'month', or 'all'")
		return
	}

	var team *string
	if teamParam := query.Get("team"); teamParam != "" {
		team = &teamParam
	}

	stats, err := h.taskRepo.GetShopStats(ctx, repository.StatsFilters{
		PeriodStart: periodStart,
		PeriodEnd:   now,
		Team:        team,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
		return
	}

	respondJSON(w, http.StatusOK, dto.StatsResponse{
		Period:            period,
		PeriodStart:       periodStart,
		PeriodEnd:         now,
		TotalTasksCreated: stats.TotalTasksCreated,
		TasksByStatus:     stats.TasksByStatus,
		OverdueCount:      stats.OverdueCount,
		DeliveredValue:    stats.DeliveredValue,
	})
}
