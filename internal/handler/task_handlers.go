package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/handler/dto"
	"github.com/inkpress/printflow/internal/middleware"
	"github.com/inkpress/printflow/internal/repository"
	"github.com/inkpress/printflow/internal/service"
	"github.com/inkpress/printflow/internal/workflow"
)

// handleCreateTask creates a new print task in the initial status.
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	task := &domain.Task{
		Title:          req.Title,
		Description:    req.Description,
		ClientName:     req.ClientName,
		ClientContact:  req.ClientContact,
		Priority:       domain.TaskPriority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedValue: req.EstimatedValue,
		Specification: domain.Specification{
			Quantity:            req.Specification.Quantity,
			Size:                req.Specification.Size,
			Material:            req.Specification.Material,
			Colors:              req.Specification.Colors,
			Finishes:            req.Specification.Finishes,
			SpecialInstructions: req.Specification.SpecialInstructions,
		},
		Attachments: req.Attachments,
	}

	created, err := h.taskService.CreateTask(ctx, task, user)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskDetail(created, false))
}

// handleGetTask retrieves task details with notes and the statuses the
// requesting user may move the task to.
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	notes, err := h.noteRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch notes")
		return
	}

	next := workflow.NextStatuses(task.Status, user.Role)
	nextStatuses := make([]string, len(next))
	for i, s := range next {
		nextStatuses[i] = string(s)
	}

	response := dto.TaskDetailResponse{
		Task:         dto.ToTaskDetail(task, task.IsOverdue(time.Now())),
		Notes:        make([]dto.NoteInfo, len(notes)),
		NextStatuses: nextStatuses,
	}
	for i, note := range notes {
		response.Notes[i] = dto.ToNoteInfo(note)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListTransitions reports which statuses the requesting user may
// move the task to.
func (h *Handler) handleListTransitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	next := workflow.NextStatuses(task.Status, user.Role)
	nextStatuses := make([]string, len(next))
	for i, s := range next {
		nextStatuses[i] = string(s)
	}

	respondJSON(w, http.StatusOK, dto.TransitionsResponse{
		Status:       string(task.Status),
		NextStatuses: nextStatuses,
	})
}

// handleTransition moves a task to a new status.
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	target := domain.TaskStatus(req.Status)
	if !target.IsValid() {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid status")
		return
	}

	task, err := h.taskService.RequestTransition(ctx, service.TransitionParams{
		TaskID:    taskID,
		Target:    target,
		ActorID:   user.ID,
		ActorName: user.Name,
		ActorRole: user.Role,
		Reason:    req.Reason,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task, task.IsOverdue(time.Now())))
}

// handleAddNote adds a comment to a task.
func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	var req dto.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	note, err := h.taskService.AddNote(ctx, taskID, req.Message, user)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToNoteInfo(note))
}

// handleDeleteTask removes a task.
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(ctx, taskID, user); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTasks returns a list of tasks with filters.
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	var statuses []string
	if statusParam := query.Get("status"); statusParam != "" {
		statuses = splitAndTrim(statusParam, ",")
	}

	var team *string
	if teamParam := query.Get("team"); teamParam != "" {
		team = &teamParam
	}

	var creatorID *string
	if creatorParam := query.Get("creator"); creatorParam != "" {
		if creatorParam == "me" {
			creatorID = &user.ID
		} else {
			creatorID = &creatorParam
		}
	}

	var assigneeID *string
	if assigneeParam := query.Get("assignee"); assigneeParam != "" {
		if assigneeParam == "me" {
			assigneeID = &user.ID
		} else {
			assigneeID = &assigneeParam
		}
	}

	var priorities []string
	if priorityParam := query.Get("priority"); priorityParam != "" {
		priorities = splitAndTrim(priorityParam, ",")
	}

	overdue := query.Get("overdue") == "true"

	var sort []string
	if sortParam := query.Get("sort"); sortParam != "" {
		sort = splitAndTrim(sortParam, ",")
	}

	limit := 50
	if limitParam := query.Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	offset := 0
	if offsetParam := query.Get("offset"); offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			offset = n
		}
	}

	results, total, err := h.taskRepo.List(ctx, repository.TaskListFilters{
		Statuses:   statuses,
		Team:       team,
		CreatorID:  creatorID,
		AssigneeID: assigneeID,
		Priorities: priorities,
		Overdue:    overdue,
		Sort:       sort,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	tasks := make([]dto.TaskListItem, len(results))
	for i, result := range results {
		tasks[i] = dto.ToTaskListItem(result.Task, result.IsOverdue)
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks:  tasks,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// splitAndTrim splits a string by delimiter and trims whitespace.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
