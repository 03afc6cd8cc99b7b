// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package quickview

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"blogbuilder/internal/shopify"
)

// Source reports where a loaded configuration came from.
type Source string

const (
	SourceMetafields Source = "metafields"
	SourceDefault    Source = "default"
	// SourceFallback means reading failed and defaults were served.
	SourceFallback Source = "fallback"
)

// Metafields is the subset of shopify.Metafields the service needs.
type Metafields interface {
	ShopID(ctx context.Context) (string, error)
	Collection(ctx context.Context, id string) (*shopify.Collection, error)
	Collections(ctx context.Context, first int) ([]shopify.Collection, error)
	GetJSON(ctx context.Context, owner, namespace, key string, out any) (bool, error)
	SetJSON(ctx context.Context, owner, namespace, key string, value any) error
}

// Loaded is a configuration with its origin.
type Loaded struct {
	Config Config `json:"config"`
	Source Source `json:"source"`
	// Owner is the metafield owner the config was read from, if any.
	Owner string `json:"owner,omitempty"`
}

// Saved describes where a configuration was written.
type Saved struct {
	Owner      string              `json:"owner"`
	Key        string              `json:"key"`
	Collection *shopify.Collection `json:"collection,omitempty"`
}

// Service reads and writes quick view settings.
type Service struct {
	meta Metafields
}

// NewService creates a Service.
func NewService(meta Metafields) *Service {
	return &Service{meta: meta}
}

// Save validates cfg and writes it to the collection's metafield when
// collectionID names an existing collection, otherwise to the shop's.
func (s *Service) Save(ctx context.Context, cfg Config, collectionID string) (*Saved, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shopID, err := s.meta.ShopID(ctx)
	if err != nil {
		return nil, fmt.Errorf("save quickview config: %w", err)
	}
	saved := &Saved{Owner: shopID, Key: ShopKey}

	if collectionID != "" {
		gid := CollectionGID(collectionID)
		col, err := s.meta.Collection(ctx, gid)
		switch {
		case err != nil:
			slog.Warn("collection lookup failed, saving to shop", "collection_id", gid, "error", err)
		case col == nil:
			slog.Info("collection not found, saving to shop", "collection_id", gid)
		default:
			saved = &Saved{Owner: col.ID, Key: CollectionKey, Collection: col}
		}
	}

	if err := s.meta.SetJSON(ctx, saved.Owner, Namespace, saved.Key, cfg); err != nil {
		return nil, fmt.Errorf("save quickview config: %w", err)
	}
	slog.Info("quickview config saved", "owner", saved.Owner, "key", saved.Key)
	return saved, nil
}

// Load returns the collection's configuration, then the shop's, then the
// defaults. It never fails: read errors are logged and the defaults are
// returned with SourceFallback.
func (s *Service) Load(ctx context.Context, collectionID string) Loaded {
	loaded, err := s.load(ctx, collectionID)
	if err != nil {
		slog.Error("load quickview config", "collection_id", collectionID, "error", err)
		return Loaded{Config: Default(), Source: SourceFallback}
	}
	return loaded
}

func (s *Service) load(ctx context.Context, collectionID string) (Loaded, error) {
	if collectionID != "" {
		gid := CollectionGID(collectionID)
		cfg := Default()
		ok, err := s.meta.GetJSON(ctx, gid, Namespace, CollectionKey, &cfg)
		if err != nil {
			return Loaded{}, err
		}
		if ok {
			return Loaded{Config: cfg, Source: SourceMetafields, Owner: gid}, nil
		}
	}

	shopID, err := s.meta.ShopID(ctx)
	if err != nil {
		return Loaded{}, err
	}
	cfg := Default()
	ok, err := s.meta.GetJSON(ctx, shopID, Namespace, ShopKey, &cfg)
	if err != nil {
		return Loaded{}, err
	}
	if !ok {
		return Loaded{Config: Default(), Source: SourceDefault}, nil
	}
	return Loaded{Config: cfg, Source: SourceMetafields, Owner: shopID}, nil
}

// Collections lists the collections a config can be attached to.
func (s *Service) Collections(ctx context.Context) ([]shopify.Collection, error) {
	return s.meta.Collections(ctx, 50)
}

// CollectionGID turns a numeric collection id into a global id.
func CollectionGID(id string) string {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return "gid://shopify/Collection/" + id
	}
	return id
}
