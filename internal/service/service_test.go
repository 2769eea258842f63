package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/settleapp/settle/internal/models"
	"github.com/settleapp/settle/internal/storage/sqlite"
)

var testDefaults = models.Defaults{
	Category:  models.CategoryOther,
	AvatarURL: "https://avatars/default",
}

const testTokenTTL = time.Hour

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Event   string
	Members []string
}

func (n *recordingNotifier) Notify(_ context.Context, members []string, event string, _ any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Event: event, Members: members})
	return nil
}

func (n *recordingNotifier) byEvent(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// recordingMailer captures recipients of sent mail.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "settle-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustUser(t *testing.T, store *sqlite.SQLiteStore, email, name string) *models.User {
	t.Helper()

	user := models.NewUser(email, name, "test-hash", testDefaults)
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func mustGroup(t *testing.T, svc *GroupService, creator *models.User, name string, members []string) *models.Group {
	t.Helper()

	group, err := svc.CreateGroup(context.Background(), creator, name, "", members)
	if err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}
