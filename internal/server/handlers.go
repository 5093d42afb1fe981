// Package server exposes the conversation agent and the evaluation runners
// over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meridianbank/nova/internal/agent"
	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/eval"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// Pinger checks the liveness of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type chatRequest struct {
	Prompt   string `json:"prompt"`
	ThreadID string `json:"thread_id"`
}

type chatResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	agent agent.Responder
}

// NewChatHandler builds a chat handler over the agent.
func NewChatHandler(a agent.Responder) *ChatHandler {
	return &ChatHandler{agent: a}
}

// Chat handles POST /chat. A missing thread_id starts a new conversation.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	reply, err := h.agent.Respond(c.Request.Context(), threadID, req.Prompt)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("chat turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": errx.SystemErrorMessage})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Response: reply, ThreadID: threadID})
}

// EvalHandler serves the dataset replay endpoints.
type EvalHandler struct {
	runner     *eval.Runner
	datasetDir string
}

// NewEvalHandler builds an eval handler reading datasets from datasetDir.
func NewEvalHandler(runner *eval.Runner, datasetDir string) *EvalHandler {
	return &EvalHandler{runner: runner, datasetDir: datasetDir}
}

// Simulation handles POST /simulation/:dataset_id.
func (h *EvalHandler) Simulation(c *gin.Context) {
	ds, ok := h.loadDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.runner.RunSimulation(c.Request.Context(), ds))
}

// SingleTurn handles POST /single-turn/:dataset_id.
func (h *EvalHandler) SingleTurn(c *gin.Context) {
	ds, ok := h.loadDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.runner.RunSingleTurn(c.Request.Context(), ds))
}

func (h *EvalHandler) loadDataset(c *gin.Context) (*eval.Dataset, bool) {
	id := c.Param("dataset_id")
	ds, err := eval.Load(h.datasetDir, id)
	if err != nil {
		var ae *errx.AppError
		if errors.As(err, &ae) {
			c.JSON(ae.Status, gin.H{"error": ae.Message})
			return nil, false
		}
		logx.Error().Err(err).Str("dataset_id", id).Msg("failed to load dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": errx.SystemErrorMessage})
		return nil, false
	}
	return ds, true
}

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler builds a health handler over the given dependency checker.
func NewHealthHandler(p Pinger) *HealthHandler {
	return &HealthHandler{pinger: p}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
