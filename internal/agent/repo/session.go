package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbank/nova/internal/agent/model"
	"github.com/meridianbank/nova/internal/agent/session"
	errx "github.com/meridianbank/nova/internal/core/error"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// RedisSessionRepository persists per-thread flow state (stage, last
// eligibility decision) with the same TTL as the conversation history, so a
// thread and its state evict together.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:state", conversationID)
}

// LoadState returns the stored state, or a fresh NEW state for unknown threads.
func (r *RedisSessionRepository) LoadState(ctx context.Context, conversationID string) (session.State, error) {
	key := r.sessionKey(conversationID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.State{Stage: session.StageNew}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session state from redis")
		return session.State{}, errx.WrapRedis(err)
	}

	var s session.State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to unmarshal session state")
		return session.State{}, fmt.Errorf("unmarshal session state: %w", err)
	}
	return s, nil
}

func (r *RedisSessionRepository) SaveState(ctx context.Context, conversationID string, s session.State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	key := r.sessionKey(conversationID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
