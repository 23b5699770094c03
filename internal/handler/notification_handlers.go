package handler

import (
	"net/http"

	"github.com/inkpress/printflow/internal/handler/dto"
	"github.com/inkpress/printflow/internal/middleware"
)

// handleListNotifications returns the authenticated user's notifications.
func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notificationRepo.ListByUser(ctx, user.ID, unreadOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications")
		return
	}

	items := make([]dto.NotificationInfo, len(notifications))
	for i, n := range notifications {
		items[i] = dto.ToNotificationInfo(n)
	}

	respondJSON(w, http.StatusOK, dto.NotificationsListResponse{
		Notifications: items,
		Total:         len(items),
	})
}

// handleMarkNotificationRead marks a single notification as read.
func (h *Handler) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	notificationID, ok := extractPathID(w, r, "notification id")
	if !ok {
		return
	}

	if err := h.notificationRepo.MarkRead(ctx, notificationID, user.ID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMarkAllNotificationsRead marks all of the user's notifications as read.
func (h *Handler) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	if err := h.notificationRepo.MarkAllRead(ctx, user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearNotifications removes all of the user's notifications.
func (h *Handler) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	if err := h.notificationRepo.DeleteByUser(ctx, user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear notifications")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
