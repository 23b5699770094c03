package domain

import "time"

// NoteKind represents the type of task note.
type NoteKind string

const (
	NoteKindComment      NoteKind = "comment"
	NoteKindStatusChange NoteKind = "status-change"
	NoteKindAssignment   NoteKind = "assignment"
)

// Note represents one entry in a task's append-only note log.
// Status-change notes are synthesized by the transition service and
// never authored directly by a user. Notes are immutable once created
// and ordered by creation time.
type Note struct {
	ID         string
	TaskID     string
	AuthorID   string
	AuthorName string
	Message    string
	Kind       NoteKind
	CreatedAt  time.Time
}
