package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/inkpress/printflow/internal/handler/dto"
	"github.com/inkpress/printflow/internal/middleware"
	"github.com/inkpress/printflow/internal/repository"
	"github.com/inkpress/printflow/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool             *pgxpool.Pool
	taskService      *service.TaskService
	taskRepo         *repository.TaskRepository
	noteRepo         *repository.NoteRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
	authMiddleware   *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, dispatcher service.Dispatcher) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// Create services
	taskService := service.NewTaskService(pool, taskRepo, noteRepo, userRepo, dispatcher)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	return &Handler{
		pool:             pool,
		taskService:      taskService,
		taskRepo:         taskRepo,
		noteRepo:         noteRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// API v1 routes with authentication
	mux.Handle("GET /api/v1/tasks", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("POST /api/v1/tasks", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks/{id}", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("DELETE /api/v1/tasks/{id}", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleDeleteTask)))
	mux.Handle("GET /api/v1/tasks/{id}/transitions", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleListTransitions)))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleTransition)))
	mux.Handle("POST /api/v1/tasks/{id}/notes", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleAddNote)))
	mux.Handle("GET /api/v1/notifications", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleListNotifications)))
	mux.Handle("PATCH /api/v1/notifications/{id}/read", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleMarkNotificationRead)))
	mux.Handle("POST /api/v1/notifications/read-all", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleMarkAllNotificationsRead)))
	mux.Handle("DELETE /api/v1/notifications", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleClearNotifications)))
	mux.Handle("GET /api/v1/stats", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleGetStats)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractPathID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractPathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return "", false
	}

	return id, true
}
