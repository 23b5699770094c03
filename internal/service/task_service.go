package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/metrics"
	"github.com/inkpress/printflow/internal/repository"
	"github.com/inkpress/printflow/internal/workflow"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dispatcher delivers notifications after a transition commits.
type Dispatcher interface {
	Enqueue(n *domain.Notification)
}

// TaskService coordinates task operations and status transitions.
type TaskService struct {
	pool       *pgxpool.Pool
	taskRepo   *repository.TaskRepository
	noteRepo   *repository.NoteRepository
	userRepo   *repository.UserRepository
	dispatcher Dispatcher
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	noteRepo *repository.NoteRepository,
	userRepo *repository.UserRepository,
	dispatcher Dispatcher,
) *TaskService {
	return &TaskService{
		pool:       pool,
		taskRepo:   taskRepo,
		noteRepo:   noteRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// TransitionParams carries everything needed to request a transition.
type TransitionParams struct {
	TaskID    string
	Target    domain.TaskStatus
	ActorID   string
	ActorName string
	ActorRole domain.Role
	Reason    string
}

// RequestTransition moves a task to a new status on behalf of an actor.
// Validation runs against the status the actor observed, and the update
// is conditional on that same status, so a concurrent transition that
// lands first surfaces as ErrConflict rather than being re-validated
// against the winner's state. Notifications for the committed
// transition are enqueued before returning.
func (s *TaskService) RequestTransition(ctx context.Context, params TransitionParams) (*domain.Task, error) {
	if !params.Target.IsValid() {
		metrics.TransitionFailures.WithLabelValues("invalid_status").Inc()
		return nil, domain.ErrInvalidStatus
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, params.TaskID)
	if err != nil {
		metrics.TransitionFailures.WithLabelValues("not_found").Inc()
		return nil, err
	}

	oldStatus := task.Status

	if err := workflow.CheckTransition(oldStatus, params.Target, params.ActorRole); err != nil {
		metrics.TransitionFailures.WithLabelValues(failureKind(err)).Inc()
		return nil, err
	}

	// Only rejections carry a reason.
	reason := ""
	if oldStatus == domain.StatusPendingApproval && params.Target == domain.StatusDesignReview {
		reason = params.Reason
	}

	var completedAt *time.Time
	if params.Target == domain.StatusDelivered {
		now := time.Now()
		completedAt = &now
	}

	err = s.taskRepo.UpdateStatus(ctx, tx, params.TaskID, oldStatus, params.Target, completedAt)
	if err != nil {
		metrics.TransitionFailures.WithLabelValues("conflict").Inc()
		return nil, err
	}

	note := &domain.Note{
		TaskID:     params.TaskID,
		AuthorID:   params.ActorID,
		AuthorName: params.ActorName,
		Message:    workflow.StatusChangeMessage(params.Target, reason),
		Kind:       domain.NoteKindStatusChange,
	}
	if _, err := s.noteRepo.Create(ctx, tx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.Status = params.Target
	task.CompletedAt = completedAt
	metrics.TransitionsTotal.WithLabelValues(string(oldStatus), string(params.Target)).Inc()

	slog.Info("task status changed",
		"task_id", params.TaskID,
		"actor_id", params.ActorID,
		"old_status", oldStatus,
		"new_status", params.Target,
	)

	drafts := workflow.ResolveNotifications(task, oldStatus, params.Target, reason)
	s.dispatch(ctx, task, drafts)

	return task, nil
}

// CreateTask creates a new task in the initial status and notifies the
// design team of the assignment.
func (s *TaskService) CreateTask(ctx context.Context, task *domain.Task, actor *domain.User) (*domain.Task, error) {
	if !workflow.CanCreate(actor.Role) {
		return nil, domain.ErrForbidden
	}

	task.Status = workflow.InitialStatus
	task.AssignedTeam = domain.RoleDesignTeam
	task.CreatorID = actor.ID

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	created, err := s.taskRepo.Create(ctx, tx, task)
	if err != nil {
		return nil, err
	}

	note := &domain.Note{
		TaskID:     created.ID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Message:    fmt.Sprintf("Task created and assigned to %s", created.AssignedTeam),
		Kind:       domain.NoteKindAssignment,
	}
	if _, err := s.noteRepo.Create(ctx, tx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task created",
		"task_id", created.ID,
		"creator_id", actor.ID,
		"client", created.ClientName,
	)

	s.dispatch(ctx, created, []workflow.Draft{workflow.AssignmentDraft(created)})

	return created, nil
}

// AddNote appends a comment to a task.
func (s *TaskService) AddNote(ctx context.Context, taskID, message string, actor *domain.User) (*domain.Note, error) {
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	note := &domain.Note{
		TaskID:     taskID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Message:    message,
		Kind:       domain.NoteKindComment,
	}
	if _, err := s.noteRepo.Create(ctx, tx, note); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return note, nil
}

// DeleteTask removes a task. Only managers may delete.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string, actor *domain.User) error {
	if actor.Role != domain.RoleManager {
		return domain.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	slog.Info("task deleted", "task_id", taskID, "actor_id", actor.ID)
	return nil
}

// dispatch expands drafts into per-user notifications and enqueues
// them. Role targets are resolved to the active users holding the role,
// duplicates across targets are collapsed per user.
func (s *TaskService) dispatch(ctx context.Context, task *domain.Task, drafts []workflow.Draft) {
	for _, draft := range drafts {
		seen := make(map[string]bool)
		recipients := make([]string, 0, len(draft.UserIDs))

		for _, id := range draft.UserIDs {
			if id != "" && !seen[id] {
				seen[id] = true
				recipients = append(recipients, id)
			}
		}
		for _, role := range draft.Roles {
			ids, err := s.userRepo.IDsByRole(ctx, role)
			if err != nil {
				slog.Error("failed to resolve role recipients",
					"role", role,
					"template", draft.Template,
					"error", err,
				)
				continue
			}
			for _, id := range ids {
				if !seen[id] {
					seen[id] = true
					recipients = append(recipients, id)
				}
			}
		}

		for _, userID := range recipients {
			s.dispatcher.Enqueue(&domain.Notification{
				UserID:   userID,
				TaskID:   task.ID,
				Template: string(draft.Template),
				Title:    draft.Title,
				Message:  draft.Message,
				Priority: draft.Priority,
			})
		}
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "invalid_status"
	default:
		return "other"
	}
}
