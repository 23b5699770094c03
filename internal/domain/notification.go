package domain

import "time"

// NotificationPriority represents how urgently a notification should
// be surfaced to the user.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Notification represents an alert delivered to a single user about
// activity on a task. The workflow resolver constructs them; the
// dispatcher owns them once enqueued.
type Notification struct {
	ID        string
	UserID    string
	TaskID    string
	Template  string
	Title     string
	Message   string
	Priority  NotificationPriority
	IsRead    bool
	CreatedAt time.Time
}
