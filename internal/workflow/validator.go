package workflow

import (
	"fmt"

	"github.com/inkpress/printflow/internal/domain"
)

// IsLegal decides whether the (current, target, role) triple is a legal
// transition. Pure and total over all enum values: unknown statuses,
// self-transitions, unreachable targets, and unauthorized roles all
// evaluate to false.
func IsLegal(current, target domain.TaskStatus, role domain.Role) bool {
	return CheckTransition(current, target, role) == nil
}

// CheckTransition validates a transition and reports why it is illegal.
// Unreachable targets (including self-transitions and anything out of a
// terminal status) report ErrInvalidTarget; reachable targets requested
// by an unauthorized role report ErrForbidden.
func CheckTransition(current, target domain.TaskStatus, role domain.Role) error {
	rule, ok := Rules[current]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidStatus, current)
	}

	if current == target || !rule.AllowsTarget(target) {
		return fmt.Errorf("%w: cannot transition %s -> %s", domain.ErrInvalidTarget, current, target)
	}

	if !rule.AllowsRole(role) {
		return fmt.Errorf("%w: role %s may not act on %s tasks", domain.ErrForbidden, role, current)
	}

	return nil
}

// NextStatuses returns the statuses the role may move a task to from
// the current status. Empty for terminal statuses and for roles not
// allowed to act on the current status.
func NextStatuses(current domain.TaskStatus, role domain.Role) []domain.TaskStatus {
	rule, ok := Rules[current]
	if !ok || !rule.AllowsRole(role) {
		return nil
	}
	next := make([]domain.TaskStatus, len(rule.NextStatuses))
	copy(next, rule.NextStatuses)
	return next
}

// StatusChangeMessage renders the deterministic note message recorded
// for a status transition. The reason clause appears only when a
// rejection reason was supplied.
func StatusChangeMessage(target domain.TaskStatus, reason string) string {
	msg := fmt.Sprintf("Status changed to %q", target)
	if reason != "" {
		msg += " - reason: " + reason
	}
	return msg
}
