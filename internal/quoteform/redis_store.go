package quoteform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RedisStore keeps session snapshots in Redis with a sliding TTL.
type RedisStore struct {
	redis  *redis.Client
	def    *Definition
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore wraps a redis client. A non-positive ttl uses DefaultSessionTTL.
func NewRedisStore(client *redis.Client, def *Definition, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("quoteform: redis client cannot be nil")
	}
	if def == nil {
		panic("quoteform: definition required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{
		redis:  client,
		def:    def,
		ttl:    ttl,
		tracer: otel.Tracer("windowquote.internal.quoteform.redis_store"),
	}
}

// Create starts a new session and stores it.
func (r *RedisStore) Create(ctx context.Context) (*Session, error) {
	s := NewSession(NewSessionID(), r.def)
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fetches and restores a session.
func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	ctx, span := r.tracer.Start(ctx, "quoteform.load_session")
	defer span.End()
	span.SetAttributes(attribute.String("quote.session_id", id))

	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("quoteform: load session: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("quoteform: decode session: %w", err)
	}
	return Restore(r.def, snap)
}

// Save writes the snapshot and resets its TTL.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ctx, span := r.tracer.Start(ctx, "quoteform.save_session")
	defer span.End()
	span.SetAttributes(
		attribute.String("quote.session_id", s.ID()),
		attribute.Int("quote.current_step", s.CurrentStep()),
	)

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("quoteform: encode session: %w", err)
	}
	if err := r.redis.Set(ctx, sessionKey(s.ID()), data, r.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("quoteform: save session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("quoteform: delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("quote_session:%s", id)
}
