package dto

import (
	"time"

	"github.com/inkpress/printflow/internal/domain"
)

// TaskListItem represents a task in the list view (without description and notes).
type TaskListItem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	ClientName     string     `json:"client_name"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssignedTeam   string     `json:"assigned_team"`
	AssigneeID     *string    `json:"assignee_id"`
	CreatorID      string     `json:"creator_id"`
	DueDate        time.Time  `json:"due_date"`
	EstimatedValue float64    `json:"estimated_value"`
	IsOverdue      bool       `json:"is_overdue"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskListItem `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TaskDetailResponse represents full task details with notes and
// the statuses the requesting user may move the task to.
type TaskDetailResponse struct {
	Task         TaskDetail `json:"task"`
	Notes        []NoteInfo `json:"notes"`
	NextStatuses []string   `json:"next_statuses"`
}

// TransitionsResponse lists the statuses the requesting user may move
// a task to from its current status.
type TransitionsResponse struct {
	Status       string   `json:"status"`
	NextStatuses []string `json:"next_statuses"`
}

// TaskDetail represents the full task object.
type TaskDetail struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	ClientName     string               `json:"client_name"`
	ClientContact  string               `json:"client_contact"`
	Status         string               `json:"status"`
	Priority       string               `json:"priority"`
	AssignedTeam   string               `json:"assigned_team"`
	AssigneeID     *string              `json:"assignee_id"`
	CreatorID      string               `json:"creator_id"`
	DueDate        time.Time            `json:"due_date"`
	EstimatedValue float64              `json:"estimated_value"`
	ActualValue    *float64             `json:"actual_value"`
	CompletedAt    *time.Time           `json:"completed_at"`
	Specification  domain.Specification `json:"specification"`
	Attachments    []string             `json:"attachments"`
	IsOverdue      bool                 `json:"is_overdue"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NoteInfo represents a task note.
type NoteInfo struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationInfo represents a notification.
type NotificationInfo struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Template  string    `json:"template"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsListResponse represents the response for GET /notifications.
type NotificationsListResponse struct {
	Notifications []NotificationInfo `json:"notifications"`
	Total         int                `json:"total"`
}

// StatsResponse represents shop statistics.
type StatsResponse struct {
	Period            string         `json:"period"`
	PeriodStart       time.Time      `json:"period_start"`
	PeriodEnd         time.Time      `json:"period_end"`
	TotalTasksCreated int            `json:"total_tasks_created"`
	TasksByStatus     map[string]int `json:"tasks_by_status"`
	OverdueCount      int            `json:"overdue_count"`
	DeliveredValue    float64        `json:"delivered_value"`
}

// ToTaskListItem converts domain.Task to TaskListItem.
func ToTaskListItem(task *domain.Task, isOverdue bool) TaskListItem {
	return TaskListItem{
		ID:             task.ID,
		Title:          task.Title,
		ClientName:     task.ClientName,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		AssignedTeam:   string(task.AssignedTeam),
		AssigneeID:     task.AssigneeID,
		CreatorID:      task.CreatorID,
		DueDate:        task.DueDate,
		EstimatedValue: task.EstimatedValue,
		IsOverdue:      isOverdue,
		CompletedAt:    task.CompletedAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskDetail converts domain.Task to TaskDetail.
func ToTaskDetail(task *domain.Task, isOverdue bool) TaskDetail {
	return TaskDetail{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		ClientName:     task.ClientName,
		ClientContact:  task.ClientContact,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		AssignedTeam:   string(task.AssignedTeam),
		AssigneeID:     task.AssigneeID,
		CreatorID:      task.CreatorID,
		DueDate:        task.DueDate,
		EstimatedValue: task.EstimatedValue,
		ActualValue:    task.ActualValue,
		CompletedAt:    task.CompletedAt,
		Specification:  task.Specification,
		Attachments:    task.Attachments,
		IsOverdue:      isOverdue,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToNoteInfo converts domain.Note to NoteInfo.
func ToNoteInfo(note *domain.Note) NoteInfo {
	return NoteInfo{
		ID:         note.ID,
		AuthorID:   note.AuthorID,
		AuthorName: note.AuthorName,
		Message:    note.Message,
		Kind:       string(note.Kind),
		CreatedAt:  note.CreatedAt,
	}
}

// ToNotificationInfo converts domain.Notification to NotificationInfo.
func ToNotificationInfo(n *domain.Notification) NotificationInfo {
	return NotificationInfo{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Template:  n.Template,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  string(n.Priority),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
