package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/inkpress/printflow/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository handles database operations for notifications.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create persists a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query, args, err := psql.
		Insert("notifications").
		Columns("user_id", "task_id", "template", "title", "message", "priority").
		Values(n.UserID, n.TaskID, n.Template, n.Title, n.Message, n.Priority).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for notification: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

// ListByUser retrieves notifications for a user, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	qb := psql.
		Select("id", "user_id", "task_id", "template", "title", "message", "priority", "is_read", "created_at").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if unreadOnly {
		qb = qb.Where(sq.Eq{"is_read": false})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByUser query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.TaskID,
			&n.Template,
			&n.Title,
			&n.Message,
			&n.Priority,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read. The userID guard keeps
// users from touching other users' notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	query, args, err := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": notificationID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkRead query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query, args, err := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkAllRead query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}

	return nil
}

// DeleteByUser removes all notifications belonging to a user.
func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID string) error {
	query, args, err := psql.
		Delete("notifications").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build DeleteByUser query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}

	return nil
}
