// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package draft keeps server-side editing sessions in Valkey. A draft holds
// the document being edited together with the article metadata, and
// expires after a period of inactivity.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"blogbuilder/internal/builder"
)

const (
	// DefaultTTL is how long an untouched draft lives.
	DefaultTTL = 24 * time.Hour

	keyPrefix = "draft:"
)

// Meta is the article metadata edited alongside the document.
type Meta struct {
	Title   string       `json:"title"`
	Author  string       `json:"author"`
	Tags    builder.Tags `json:"tags"`
	Excerpt string       `json:"excerpt"`
	BlogID  string       `json:"blogId,omitempty"`
}

// Draft is one editing session. ArticleID is empty until the draft is
// first saved to the shop.
type Draft struct {
	ID        string           `json:"id"`
	ArticleID string           `json:"articleId,omitempty"`
	Document  builder.Document `json:"sections"`
	Meta      Meta             `json:"meta"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Store manages drafts in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a draft store. A zero ttl means DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Create assigns an id to d, stamps it and stores it.
func (s *Store) Create(ctx context.Context, d *Draft) error {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	if err := s.write(ctx, d); err != nil {
		return fmt.Errorf("draft create: %w", err)
	}
	return nil
}

// Get returns the draft with the given id, or nil if it does not exist or
// has expired.
func (s *Store) Get(ctx context.Context, id string) (*Draft, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draft get: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("draft unmarshal: %w", err)
	}
	return &d, nil
}

// Put replaces a draft and resets its TTL.
func (s *Store) Put(ctx context.Context, d *Draft) error {
	d.UpdatedAt = time.Now().UTC()
	if err := s.write(ctx, d); err != nil {
		return fmt.Errorf("draft put: %w", err)
	}
	return nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, d *Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+d.ID, payload, s.ttl).Err()
}
