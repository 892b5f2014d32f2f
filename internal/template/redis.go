package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each template as a JSON value under prefix+id, with the
// ids tracked in a set at prefix+"index".
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store over client. An empty prefix uses the default.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "index"
}

// Create assigns an id and timestamps to draft and stores it.
func (s *RedisStore) Create(ctx context.Context, draft Template) (Template, error) {
	now := s.now().UTC()
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	data, err := json.Marshal(draft)
	if err != nil {
		return Template{}, fmt.Errorf("failed to encode template: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(draft.ID), data, 0)
		pipe.SAdd(ctx, s.indexKey(), draft.ID)
		return nil
	})
	if err != nil {
		return Template{}, fmt.Errorf("failed to store template %s: %w", draft.ID, err)
	}
	return draft, nil
}

// Get returns the template with the given id.
func (s *RedisStore) Get(ctx context.Context, id string) (Template, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, fmt.Errorf("failed to load template %s: %w", id, err)
	}

	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("failed to decode template %s: %w", id, err)
	}
	return t, nil
}

// List returns every indexed template, oldest first. Index entries whose value
// has disappeared are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Template, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read template index: %w", err)
	}
	templates := make([]Template, 0, len(ids))
	if len(ids) == 0 {
		return templates, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var t Template
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("failed to decode template %s: %w", ids[i], err)
		}
		templates = append(templates, t)
	}

	sortTemplates(templates)
	return templates, nil
}

// Delete removes the template with the given id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(id))
		pipe.SRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}
