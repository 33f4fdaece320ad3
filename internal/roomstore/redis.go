package roomstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// casAttempts bounds the optimistic WATCH/MULTI retry loop. A loop is only
// re-entered when Redis aborts the transaction because the key changed, so
// a handful of attempts is plenty.
const casAttempts = 5

// RedisStore keeps each document in a Redis hash ({doc, rev}) under a
// namespaced key. Revision checks run inside WATCH/MULTI so concurrent
// writers cannot both pass the same-revision gate.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis at addr. Documents expire after ttl
// (refreshed on every write); zero means no expiry. A room lives for one
// lunch run, so a ttl of a few days is the usual setting.
func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: "roomstore:doc:",
		ttl:    ttl,
	}
}

// Ping verifies the connection; call it once at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("roomstore: redis ping: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Create(ctx context.Context, doc json.RawMessage) (string, string, error) {
	id := newDocumentID()
	key := s.key(id)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "doc", []byte(doc), "rev", 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", "", fmt.Errorf("roomstore: create: %w", err)
	}
	return id, "1", nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (json.RawMessage, string, error) {
	values, err := s.client.HMGet(ctx, s.key(id), "doc", "rev").Result()
	if err != nil {
		return nil, "", fmt.Errorf("roomstore: get %s: %w", id, err)
	}
	doc, docOK := values[0].(string)
	rev, revOK := values[1].(string)
	if !docOK || !revOK {
		return nil, "", ErrNotFound
	}
	return json.RawMessage(doc), rev, nil
}

func (s *RedisStore) Put(ctx context.Context, id string, doc json.RawMessage, expectRev string) (string, error) {
	key := s.key(id)
	var newRev string

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "rev").Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if expectRev != "" && expectRev != current {
			return ErrRevisionMismatch
		}

		next, err := strconv.Atoi(current)
		if err != nil {
			return fmt.Errorf("stored revision %q is not a number", current)
		}
		next++
		newRev = strconv.Itoa(next)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "doc", []byte(doc), "rev", next)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			// Key changed between WATCH and EXEC. For a conditional
			// write that means the caller's revision is stale now.
			if expectRev != "" {
				return "", ErrRevisionMismatch
			}
			continue
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrRevisionMismatch) {
			return "", err
		}
		if err != nil {
			return "", fmt.Errorf("roomstore: put %s: %w", id, err)
		}
		return newRev, nil
	}
	return "", fmt.Errorf("roomstore: put %s: transaction kept failing after %d attempts", id, casAttempts)
}
