// Package cache provides Redis-backed infrastructure components.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"makhzan/internal/domain/drafts"
)

// DraftStore keeps drafts in Redis under a per-owner, per-kind key with a
// sliding TTL. An expired or missing draft reads back as an empty one.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a new Redis draft store.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func draftKey(owner string, kind drafts.Kind) string {
	return fmt.Sprintf("draft:%s:%s", owner, kind)
}

// Get fetches the draft, empty when none exists.
func (s *DraftStore) Get(ctx context.Context, owner string, kind drafts.Kind) (*drafts.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(owner, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &drafts.Draft{Owner: owner, Kind: kind}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	draft := &drafts.Draft{}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return draft, nil
}

// Save stores the draft and refreshes its TTL.
func (s *DraftStore) Save(ctx context.Context, draft *drafts.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.Owner, draft.Kind), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Delete drops the draft.
func (s *DraftStore) Delete(ctx context.Context, owner string, kind drafts.Kind) error {
	if err := s.client.Del(ctx, draftKey(owner, kind)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

var _ drafts.Store = (*DraftStore)(nil)
