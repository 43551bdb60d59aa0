package conversation

import (
	"context"
	"fmt"
	"time"

	"helpdesk_assistant/src/model"
	"helpdesk_assistant/src/storage"

	"github.com/bytedance/sonic"
)

const transcriptPrefix = "conversation:"

// Transcript records exchanges per user
type Transcript interface {
	Append(ctx context.Context, userID string, exchange model.Exchange) error
	History(ctx context.Context, userID string) ([]model.Exchange, error)
}

// RedisTranscript keeps a capped list of exchanges per user. The key TTL is
// refreshed on every write.
type RedisTranscript struct {
	store    *storage.RedisStore
	ttl      time.Duration
	maxTurns int
}

func NewRedisTranscript(store *storage.RedisStore, ttl time.Duration, maxTurns int) *RedisTranscript {
	return &RedisTranscript{store: store, ttl: ttl, maxTurns: maxTurns}
}

func (r *RedisTranscript) key(userID string) string {
	return transcriptPrefix + userID
}

func (r *RedisTranscript) Append(ctx context.Context, userID string, exchange model.Exchange) error {
	data, err := sonic.Marshal(exchange)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange: %w", err)
	}
	return r.store.PushCapped(ctx, r.key(userID), data, r.maxTurns, r.ttl)
}

// History returns the stored exchanges, oldest first. Entries that fail to
// decode are skipped.
func (r *RedisTranscript) History(ctx context.Context, userID string) ([]model.Exchange, error) {
	items, err := r.store.Range(ctx, r.key(userID))
	if err != nil {
		return nil, err
	}

	history := make([]model.Exchange, 0, len(items))
	for _, item := range items {
		var ex model.Exchange
		if err := sonic.UnmarshalString(item, &ex); err != nil {
			continue
		}
		history = append(history, ex)
	}
	return history, nil
}

// NopTranscript records nothing
type NopTranscript struct{}

func (NopTranscript) Append(context.Context, string, model.Exchange) error { return nil }

func (NopTranscript) History(context.Context, string) ([]model.Exchange, error) {
	return []model.Exchange{}, nil
}
