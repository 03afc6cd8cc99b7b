// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ArticleRevision is a snapshot of an article taken after every successful
// save. Sections holds the structured document so a revision can be
// restored without going through the lossy HTML parser.
type ArticleRevision struct {
	ID        uuid.UUID       `json:"id"`
	ArticleID string          `json:"article_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Tags      []string        `json:"tags"`
	Sections  json.RawMessage `json:"sections"`
	HTML      string          `json:"html"`
	SizeBytes int64           `json:"size_bytes"`
	CreatedAt time.Time       `json:"created_at"`
}

// HumanSize returns the rendered HTML size in human-readable form.
func (r *ArticleRevision) HumanSize() string {
	return HumanSize(r.SizeBytes)
}
