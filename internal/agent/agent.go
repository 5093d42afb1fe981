// Package agent exposes the conversation entry point the HTTP layer and the
// evaluation runner call into. One Respond call is one model turn: it
// serializes on the thread lock, restores the thread's flow state, runs the
// graph, and persists the updated state.
package agent

import (
	"context"
	"fmt"

	"github.com/meridianbank/nova/internal/agent/graph"
	"github.com/meridianbank/nova/internal/agent/model"
	"github.com/meridianbank/nova/internal/agent/session"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// Responder is what callers of the agent depend on.
type Responder interface {
	Respond(ctx context.Context, threadID, prompt string) (string, error)
}

// Service runs conversation turns over a compiled graph.
type Service struct {
	runner   graph.Runner
	sessions model.SessionRepository
	locks    *session.Locks
}

// NewService wires a turn service from its collaborators.
func NewService(runner graph.Runner, sessions model.SessionRepository) *Service {
	return &Service{
		runner:   runner,
		sessions: sessions,
		locks:    session.NewLocks(),
	}
}

// Respond processes a single customer message on the given thread and returns
// the assistant reply. Concurrent calls for the same thread id are serialized
// so history is appended in request order.
func (s *Service) Respond(ctx context.Context, threadID, prompt string) (string, error) {
	unlock := s.locks.Acquire(threadID)
	defer unlock()

	state, err := s.sessions.LoadState(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("load session state: %w", err)
	}

	tracker := session.NewTracker(threadID)
	tracker.Restore(state)
	ctx = session.NewContext(ctx, tracker)

	reply, err := s.runner.Invoke(ctx, model.QueryInput{
		ConversationID: threadID,
		Query:          prompt,
	})
	if err != nil {
		return "", fmt.Errorf("invoke graph: %w", err)
	}

	if err := s.sessions.SaveState(ctx, threadID, tracker.Snapshot()); err != nil {
		// The reply is already computed and stored; a stale stage on the next
		// turn only makes the gate re-ask for a step.
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to persist session state")
	}

	return reply, nil
}

var _ Responder = (*Service)(nil)
