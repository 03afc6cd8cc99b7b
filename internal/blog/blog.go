// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog ties the document model to article persistence. It turns an
// edited document plus metadata into a stored article (HTML body and the
// structured sections copy) and turns a stored article back into an
// editable document.
package blog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"blogbuilder/internal/builder"
	"blogbuilder/internal/models"
)

// DefaultAuthor is used when a save request leaves the author blank.
const DefaultAuthor = "Admin"

var (
	// ErrMissingTitle is returned by Save when the title is blank.
	ErrMissingTitle = errors.New("title is required")

	// ErrNotFound is returned when an article or revision does not exist.
	ErrNotFound = errors.New("not found")

	// ErrHistoryDisabled is returned by revision operations when no
	// revision store is configured.
	ErrHistoryDisabled = errors.New("revision history is disabled")
)

// AdapterError wraps a failure reported by the persistence backend. Its
// message is the backend's message, unchanged, so it can be shown to the
// editor as-is.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string { return e.Err.Error() }

func (e *AdapterError) Unwrap() error { return e.Err }

// ArticleInput is what the service hands to the repository on save. An
// empty ID creates a new article.
type ArticleInput struct {
	ID       string
	BlogID   string
	Title    string
	Handle   string
	Author   string
	Tags     builder.Tags
	Summary  string
	Body     string
	Sections json.RawMessage
}

// LoadedArticle is an article as read back from the repository. Sections
// is nil when the article has no structured copy.
type LoadedArticle struct {
	Article  models.Article
	Sections json.RawMessage
}

// Repository persists articles. Implementations return an error wrapping
// ErrNotFound for unknown ids.
type Repository interface {
	Save(ctx context.Context, in ArticleInput) (*models.Article, error)
	Load(ctx context.Context, id string) (*LoadedArticle, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]models.Article, error)
}

// MediaSource lists images the editor can pick from.
type MediaSource interface {
	ListMedia(ctx context.Context) ([]models.MediaAsset, error)
}

// RevisionStore records local article history.
type RevisionStore interface {
	Create(ctx context.Context, rev *models.ArticleRevision) (*models.ArticleRevision, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ArticleRevision, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleRevision, error)
	Latest(ctx context.Context, articleID string) (*models.ArticleRevision, error)
	Count(ctx context.Context, articleID string) (int, error)
	Prune(ctx context.Context, articleID string, keep int) (int64, error)
	DeleteByArticle(ctx context.Context, articleID string) error
}

// SaveRequest is the editor's save payload.
type SaveRequest struct {
	ArticleID string           `json:"articleId,omitempty"`
	BlogID    string           `json:"blogId,omitempty"`
	Title     string           `json:"title"`
	Author    string           `json:"author"`
	Tags      builder.Tags     `json:"tags"`
	Excerpt   string           `json:"excerpt"`
	Document  builder.Document `json:"sections"`
}

// SaveResult describes a successful save.
type SaveResult struct {
	Article  *models.Article         `json:"article"`
	HTML     string                  `json:"html"`
	Revision *models.ArticleRevision `json:"revision,omitempty"`
}

// Source tells where an editable document came from.
type Source string

const (
	SourceSections Source = "sections"
	SourceHTML     Source = "html"
	SourceDefault  Source = "default"
	SourceRevision Source = "revision"
)

// Editable is an article opened for editing.
type Editable struct {
	Article  models.Article   `json:"article"`
	Document builder.Document `json:"sections"`
	Source   Source           `json:"source"`
}
