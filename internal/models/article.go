// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the data shapes shared between the Shopify adapter,
// the local revision store and the HTTP layer.
package models

import (
	"strings"
	"time"
)

// Article is a blog article as stored in the shop. ID is the Shopify global
// id (gid://shopify/Article/<n>).
type Article struct {
	ID          string     `json:"id"`
	BlogID      string     `json:"blog_id,omitempty"`
	BlogTitle   string     `json:"blog_title,omitempty"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LegacyID returns the numeric part of the article's global id, as used by
// the REST Admin API. Ids that are already numeric are returned unchanged.
func (a *Article) LegacyID() string {
	return LegacyID(a.ID)
}

// LegacyID strips the gid://shopify/<Type>/ prefix from a global id.
func LegacyID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

// ArticleGID turns a numeric article id into a global id. Global ids are
// returned unchanged.
func ArticleGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/Article/" + id
}
