package model

// ================ Config ================
type ConversationConfig struct {
	TTL   string `envconfig:"CONVERSATION_TTL" default:"1h"`
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.2"`
}

type GuardrailConfig struct {
	Enabled        bool   `envconfig:"GUARDRAIL_ENABLED" default:"true"`
	TimeoutSeconds int    `envconfig:"GUARDRAIL_TIMEOUT_SECONDS" default:"20"`
	Model          string `envconfig:"GUARDRAIL_MODEL" default:"gemini-2.5-flash"`
}

type ResponsePromptConfig struct {
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"Nova"`
	BankName      string `envconfig:"PROMPT_BANK_NAME" default:"Meridian Bank"`
}
