package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	goredis "github.com/redis/go-redis/v9"

	"github.com/meridianbank/nova/internal/agent"
	"github.com/meridianbank/nova/internal/agent/graph"
	"github.com/meridianbank/nova/internal/agent/model"
	"github.com/meridianbank/nova/internal/agent/repo"
	"github.com/meridianbank/nova/internal/core"
	"github.com/meridianbank/nova/internal/eval"
	"github.com/meridianbank/nova/internal/server"
	"github.com/meridianbank/nova/internal/store"
	logx "github.com/meridianbank/nova/pkg/logger"
	pkgredis "github.com/meridianbank/nova/pkg/redis"
)

// AppConfig defines all configurable parameters of the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// HTTP
	Host string `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"HTTP_PORT" default:"8080"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Response     model.ResponseModelConfig
	Guardrail    model.GuardrailConfig
	Prompt       model.ResponsePromptConfig
	Conversation model.ConversationConfig

	// Evaluation datasets
	DatasetDir string `envconfig:"DATASET_DIR" default:"datasets"`
}

type redisPinger struct {
	rdb *goredis.Client
}

func (p *redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("no .env file loaded: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Printf("failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	st, err := store.Open()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load customer data store")
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Conversation.TTL).Msg("invalid CONVERSATION_TTL")
	}

	ctx := context.Background()
	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ResponseModel:    cfg.Response,
		Guardrail:        cfg.Guardrail,
		ResponsePrompt:   cfg.Prompt,
		Conversation:     cfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Store:            st,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build conversation graph")
	}

	svc := agent.NewService(runner, repo.NewRedisSessionRepository(rdb, ttl))

	r := server.NewRouter(env, server.Dependencies{
		ChatHandler:   server.NewChatHandler(svc),
		EvalHandler:   server.NewEvalHandler(eval.NewRunner(svc), cfg.DatasetDir),
		HealthHandler: server.NewHealthHandler(&redisPinger{rdb: rdb}),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", addr).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown error")
	}
	logx.Info().Msg("server stopped")
}
