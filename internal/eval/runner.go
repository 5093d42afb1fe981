package eval

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianbank/nova/internal/agent"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// TurnResult records one prompt/response exchange during a run.
type TurnResult struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RowResult is the outcome of replaying one dataset row.
type RowResult struct {
	RowID    string       `json:"row_id"`
	ThreadID string       `json:"thread_id"`
	Turns    []TurnResult `json:"turns"`
}

// RunResult is the full report of a batch run.
type RunResult struct {
	DatasetID string      `json:"dataset_id"`
	Mode      string      `json:"mode"`
	Rows      []RowResult `json:"rows"`
}

// Runner replays datasets through the agent.
type Runner struct {
	agent agent.Responder
}

// NewRunner builds a runner over the given agent.
func NewRunner(a agent.Responder) *Runner {
	return &Runner{agent: a}
}

// RunSimulation replays each row on its own persistent thread, sending the
// row's prompts in order so tool state carries across turns.
func (r *Runner) RunSimulation(ctx context.Context, ds *Dataset) *RunResult {
	out := &RunResult{DatasetID: ds.ID, Mode: "simulation"}
	for _, row := range ds.Rows {
		threadID := uuid.NewString()
		rr := RowResult{RowID: row.ID, ThreadID: threadID}
		for _, prompt := range row.Messages {
			rr.Turns = append(rr.Turns, r.turn(ctx, threadID, prompt))
		}
		out.Rows = append(out.Rows, rr)
	}
	return out
}

// RunSingleTurn replays every prompt on a fresh thread, so each exchange is
// judged without conversation context.
func (r *Runner) RunSingleTurn(ctx context.Context, ds *Dataset) *RunResult {
	out := &RunResult{DatasetID: ds.ID, Mode: "single-turn"}
	for _, row := range ds.Rows {
		rr := RowResult{RowID: row.ID}
		for _, prompt := range row.Messages {
			threadID := uuid.NewString()
			t := r.turn(ctx, threadID, prompt)
			rr.Turns = append(rr.Turns, t)
		}
		out.Rows = append(out.Rows, rr)
	}
	return out
}

func (r *Runner) turn(ctx context.Context, threadID, prompt string) TurnResult {
	t := TurnResult{Prompt: prompt}
	reply, err := r.agent.Respond(ctx, threadID, prompt)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("evaluation turn failed")
		t.Error = err.Error()
		return t
	}
	t.Response = reply
	return t
}
