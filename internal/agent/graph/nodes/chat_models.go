package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/meridianbank/nova/internal/agent/model"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey          string
	BaseURL         string
	RespConfig      *model.ResponseModelConfig
	GuardrailConfig *model.GuardrailConfig
}

// ChatModels holds the tool-calling response model and the guardrail's
// verification model. The verifier is a separate model instance so tool
// bindings on the response model never leak into verification calls.
type ChatModels struct {
	Response          *gemini.ChatModel
	Verifier          *gemini.ChatModel
	ResponseModelName string
	VerifierModelName string
}

// NewChatModels creates both chat models from one Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Response model")
		return nil, fmt.Errorf("error creating Response model: %w", err)
	}

	// Verification wants determinism over style.
	verifierTemp := float32(0)
	chatModelVerifier, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.GuardrailConfig.Model,
		Temperature: &verifierTemp,
		MaxTokens:   &config.RespConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Verifier model")
		return nil, fmt.Errorf("error creating Verifier model: %w", err)
	}

	return &ChatModels{
		Response:          chatModelResponse,
		Verifier:          chatModelVerifier,
		ResponseModelName: config.RespConfig.Model,
		VerifierModelName: config.GuardrailConfig.Model,
	}, nil
}

// BindToolsToResponseModel binds tools to the response chat model
func (cm *ChatModels) BindToolsToResponseModel(ctx context.Context, tools []*schema.ToolInfo) error {
	if err := cm.Response.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}

	logx.Debug().Msg("Successfully bound tools to response model")
	return nil
}

// NewResponseChatModelNode creates a wrapper for the Response chat model to be used as a node
func NewResponseChatModelNode(chatModel *gemini.ChatModel) *gemini.ChatModel {
	return chatModel
}
