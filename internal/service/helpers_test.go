package service_test

import (
	"sync"
	"testing"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/dom/hero-archive/internal/repository/postgres"
	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/testutil"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	Type    websocket.MessageType
	Payload interface{}
}

type recordingEvents struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingEvents) Publish(msgType websocket.MessageType, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{Type: msgType, Payload: payload})
}

func (r *recordingEvents) Types() []websocket.MessageType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]websocket.MessageType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

type fixture struct {
	db       *testutil.TestDB
	repos    *repository.Repositories
	services *service.Services
	events   *recordingEvents
}

func newFixture(t *testing.T, opts service.Options) *fixture {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	events := &recordingEvents{}
	if opts.Events == nil {
		opts.Events = events
	}
	if opts.Logger == nil {
		opts.Logger = testutil.DiscardLogger()
	}

	services, err := service.NewServices(repos, testutil.TestConfig(), opts)
	require.NoError(t, err)

	return &fixture{db: testDB, repos: repos, services: services, events: events}
}

// credential returns an Authorization header value for user.
func (f *fixture) credential(t *testing.T, user *domain.User) string {
	t.Helper()

	token, _, err := f.services.Auth.IssueToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *fixture) newUser(t *testing.T) (*domain.User, string) {
	t.Helper()

	user, _ := testutil.NewUserBuilder().Build(t, f.db.DB)
	return user, f.credential(t, user)
}

func (f *fixture) newAdmin(t *testing.T) (*domain.User, string) {
	t.Helper()

	user, _ := testutil.NewUserBuilder().AsAdmin().Build(t, f.db.DB)
	return user, f.credential(t, user)
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func priorityPtr(p domain.Priority) *domain.Priority { return &p }
