// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package shopify

import (
	"context"
	"encoding/json"
	"fmt"
)

var (
	shopIDQuery = mustQuery(`
query ShopID {
	shop { id }
}`)

	collectionQuery = mustQuery(`
query Collection($id: ID!) {
	collection(id: $id) { id title handle }
}`)

	collectionsQuery = mustQuery(`
query Collections($first: Int!) {
	collections(first: $first) { nodes { id title handle } }
}`)

	metafieldQuery = mustQuery(`
query OwnerMetafield($owner: ID!, $namespace: String!, $key: String!) {
	node(id: $owner) {
		... on HasMetafields {
			metafield(namespace: $namespace, key: $key) { value type }
		}
	}
}`)

	metafieldsSetMutation = mustQuery(`
mutation MetafieldsSet($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) {
		metafields { id key namespace }
		userErrors { field message code }
	}
}`)
)

// Collection is a product collection.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Metafields reads and writes JSON metafields.
type Metafields struct {
	client *Client
}

// NewMetafields creates a metafield accessor.
func NewMetafields(c *Client) *Metafields {
	return &Metafields{client: c}
}

// ShopID returns the shop's global id.
func (m *Metafields) ShopID(ctx context.Context) (string, error) {
	var out struct {
		Shop struct {
			ID string `json:"id"`
		} `json:"shop"`
	}
	if err := m.client.GraphQL(ctx, shopIDQuery, nil, &out); err != nil {
		return "", fmt.Errorf("shop id: %w", err)
	}
	return out.Shop.ID, nil
}

// Collection returns a collection, or nil if it does not exist.
func (m *Metafields) Collection(ctx context.Context, id string) (*Collection, error) {
	var out struct {
		Collection *Collection `json:"collection"`
	}
	if err := m.client.GraphQL(ctx, collectionQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, fmt.Errorf("collection query: %w", err)
	}
	return out.Collection, nil
}

// Collections returns up to first collections.
func (m *Metafields) Collections(ctx context.Context, first int) ([]Collection, error) {
	var out struct {
		Collections struct {
			Nodes []Collection `json:"nodes"`
		} `json:"collections"`
	}
	if err := m.client.GraphQL(ctx, collectionsQuery, map[string]any{"first": first}, &out); err != nil {
		return nil, fmt.Errorf("collections query: %w", err)
	}
	if out.Collections.Nodes == nil {
		return []Collection{}, nil
	}
	return out.Collections.Nodes, nil
}

// SetJSON writes value as a json metafield on owner. Raw JSON (json.RawMessage
// or []byte) is stored as-is; anything else is marshalled first.
func (m *Metafields) SetJSON(ctx context.Context, owner, namespace, key string, value any) error {
	var raw string
	switch v := value.(type) {
	case json.RawMessage:
		raw = string(v)
	case []byte:
		raw = string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode metafield %s.%s: %w", namespace, key, err)
		}
		raw = string(b)
	}

	vars := map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   owner,
			"namespace": namespace,
			"key":       key,
			"type":      "json",
			"value":     raw,
		}},
	}
	var out struct {
		MetafieldsSet struct {
			UserErrors UserErrors `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := m.client.GraphQL(ctx, metafieldsSetMutation, vars, &out); err != nil {
		return fmt.Errorf("metafields set: %w", err)
	}
	return out.MetafieldsSet.UserErrors.orNil()
}

// GetJSON reads a json metafield of owner into out. It reports false when
// the owner or the metafield does not exist.
func (m *Metafields) GetJSON(ctx context.Context, owner, namespace, key string, out any) (bool, error) {
	var resp struct {
		Node *struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"node"`
	}
	vars := map[string]any{"owner": owner, "namespace": namespace, "key": key}
	if err := m.client.GraphQL(ctx, metafieldQuery, vars, &resp); err != nil {
		return false, fmt.Errorf("metafield query: %w", err)
	}
	if resp.Node == nil || resp.Node.Metafield == nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(resp.Node.Metafield.Value), out); err != nil {
		return false, fmt.Errorf("decode metafield %s.%s: %w", namespace, key, err)
	}
	return true, nil
}
