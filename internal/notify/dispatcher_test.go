package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/inkpress/printflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu      sync.Mutex
	created []*domain.Notification
}

func (s *recordingStore) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = "n-1"
	s.created = append(s.created, n)
	return n, nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "printflow.notifications.user-42", SubjectFor("user-42"))
}

func TestDispatcher_PersistsAndPublishes(t *testing.T) {
	store := &recordingStore{}
	pub := &recordingPublisher{}
	d := NewDispatcher(store, pub, testLogger(), 8)

	d.Enqueue(&domain.Notification{
		UserID:   "user-1",
		TaskID:   "task-1",
		Template: "task-approved",
		Title:    "Task Approved",
		Message:  "approved",
		Priority: domain.NotificationPriorityHigh,
	})
	d.Close()

	require.Equal(t, 1, store.count())

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.subjects, 1)
	assert.Equal(t, "printflow.notifications.user-1", pub.subjects[0])

	var got domain.Notification
	require.NoError(t, json.Unmarshal(pub.payloads[0], &got))
	assert.Equal(t, "n-1", got.ID)
	assert.Equal(t, "task-approved", got.Template)
}

func TestDispatcher_NilPublisher(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(store, nil, testLogger(), 8)

	d.Enqueue(&domain.Notification{UserID: "user-1", Template: "task-completed"})
	d.Close()

	assert.Equal(t, 1, store.count())
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(store, nil, testLogger(), 32)

	for i := 0; i < 10; i++ {
		d.Enqueue(&domain.Notification{UserID: "user-1", Template: "task-assigned"})
	}
	d.Close()

	assert.Equal(t, 10, store.count())
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingStore{}, nil, testLogger(), 8)
	d.Close()
	d.Close()
}

type slowStore struct {
	recordingStore
}

func (s *slowStore) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	time.Sleep(10 * time.Millisecond)
	return s.recordingStore.Create(ctx, n)
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	store := &slowStore{}
	d := NewDispatcher(store, nil, testLogger(), 1)
	defer d.Close()

	start := time.Now()
	for i := 0; i < 100; i++ {
		d.Enqueue(&domain.Notification{UserID: "user-1", Template: "task-assigned"})
	}
	// With a queue of 1 and a slow store most sends drop immediately.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
