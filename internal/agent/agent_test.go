package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/nova/internal/agent/model"
	"github.com/meridianbank/nova/internal/agent/session"
)

type stubRunner struct {
	reply  string
	err    error
	onCall func(ctx context.Context, in model.QueryInput)
}

func (s *stubRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	if s.onCall != nil {
		s.onCall(ctx, in)
	}
	return s.reply, s.err
}

type memorySessions struct {
	mu     sync.Mutex
	states map[string]session.State
}

func newMemorySessions() *memorySessions {
	return &memorySessions{states: make(map[string]session.State)}
}

func (m *memorySessions) LoadState(ctx context.Context, conversationID string) (session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[conversationID], nil
}

func (m *memorySessions) SaveState(ctx context.Context, conversationID string, state session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[conversationID] = state
	return nil
}

// TestRespond_AttachesTrackerAndPersistsState verifies a turn sees the restored
// tracker in context and its stage survives into the next turn.
func TestRespond_AttachesTrackerAndPersistsState(t *testing.T) {
	sessions := newMemorySessions()
	runner := &stubRunner{
		reply: "done",
		onCall: func(ctx context.Context, in model.QueryInput) {
			tr := session.FromContext(ctx)
			require.NotNil(t, tr)
			tr.Advance(session.StageProfiled)
		},
	}
	svc := NewService(runner, sessions)

	reply, err := svc.Respond(context.Background(), "thread-1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "done", reply)
	assert.Equal(t, session.StageProfiled, sessions.states["thread-1"].Stage)

	// next turn restores the persisted stage
	runner.onCall = func(ctx context.Context, in model.QueryInput) {
		assert.Equal(t, session.StageProfiled, session.FromContext(ctx).Stage())
	}
	_, err = svc.Respond(context.Background(), "thread-1", "again")
	require.NoError(t, err)
}

// TestRespond_PropagatesRunnerError verifies failures surface and state is not saved.
func TestRespond_PropagatesRunnerError(t *testing.T) {
	sessions := newMemorySessions()
	svc := NewService(&stubRunner{err: errors.New("upstream down")}, sessions)

	_, err := svc.Respond(context.Background(), "thread-1", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Empty(t, sessions.states)
}

// TestRespond_ThreadsAreIsolated verifies state never leaks across thread ids.
func TestRespond_ThreadsAreIsolated(t *testing.T) {
	sessions := newMemorySessions()
	runner := &stubRunner{
		reply: "ok",
		onCall: func(ctx context.Context, in model.QueryInput) {
			if in.ConversationID == "thread-a" {
				session.FromContext(ctx).Advance(session.StagePreApproved)
			}
		},
	}
	svc := NewService(runner, sessions)

	_, err := svc.Respond(context.Background(), "thread-a", "hi")
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), "thread-b", "hi")
	require.NoError(t, err)

	assert.Equal(t, session.StagePreApproved, sessions.states["thread-a"].Stage)
	assert.Equal(t, session.StageNew, sessions.states["thread-b"].Stage)
}

// TestRespond_SerializesSameThread verifies concurrent turns on one thread do
// not interleave.
func TestRespond_SerializesSameThread(t *testing.T) {
	sessions := newMemorySessions()
	var inFlight, maxInFlight int
	var mu sync.Mutex
	runner := &stubRunner{
		reply: "ok",
		onCall: func(ctx context.Context, in model.QueryInput) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()
			time.Sleep(2 * time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
		},
	}
	svc := NewService(runner, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Respond(context.Background(), "thread-1", "hi")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
}
