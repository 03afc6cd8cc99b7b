// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"blogbuilder/internal/builder"
	"blogbuilder/internal/markdown"
	"blogbuilder/internal/models"
	"blogbuilder/internal/slug"
)

// Options configures a Service.
type Options struct {
	// Revisions enables local history. Nil disables it.
	Revisions RevisionStore
	// KeepRevisions bounds the history kept per article. Zero keeps all.
	KeepRevisions int
	// Sanitize runs text column content through the HTML sanitizer.
	Sanitize bool
	// Saves, if set, counts save attempts by result.
	Saves *prometheus.CounterVec
}

// Service implements the save and load flows.
type Service struct {
	repo      Repository
	revisions RevisionStore
	keep      int
	opts      []builder.Option
	saves     *prometheus.CounterVec
}

// NewService creates a Service over the given repository.
func NewService(repo Repository, o Options) *Service {
	s := &Service{
		repo:      repo,
		revisions: o.Revisions,
		keep:      o.KeepRevisions,
		saves:     o.Saves,
	}
	if o.Sanitize {
		s.opts = append(s.opts, builder.WithSanitizer())
	}
	return s
}

// HistoryEnabled reports whether revisions are recorded.
func (s *Service) HistoryEnabled() bool {
	return s.revisions != nil
}

// Render serializes a document with the service's serializer options.
func (s *Service) Render(doc builder.Document) (string, error) {
	return builder.Serialize(doc, s.opts...)
}

// Save validates the request, renders the document and stores the article.
// The request's document is never modified. Failures are ErrMissingTitle,
// builder.ErrNoValidContent or an *AdapterError from the repository.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*SaveResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		s.count("invalid")
		return nil, ErrMissingTitle
	}

	doc := builder.Validate(req.Document)
	html, err := builder.Serialize(doc, s.opts...)
	if err != nil {
		s.count("invalid")
		return nil, err
	}

	summary, err := markdown.Summary(req.Excerpt)
	if err != nil {
		s.count("invalid")
		return nil, fmt.Errorf("render excerpt: %w", err)
	}

	sections, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode sections: %w", err)
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = DefaultAuthor
	}

	in := ArticleInput{
		ID:       req.ArticleID,
		BlogID:   req.BlogID,
		Title:    title,
		Author:   author,
		Tags:     builder.NormalizeTags(req.Tags...),
		Summary:  summary,
		Body:     html,
		Sections: sections,
	}
	if in.ID == "" {
		in.Handle = slug.Generate(title)
	}

	article, err := s.repo.Save(ctx, in)
	if err != nil {
		s.count("adapter_error")
		slog.Error("article save failed", "article_id", req.ArticleID, "error", err)
		return nil, &AdapterError{Op: "save article", Err: err}
	}
	s.count("ok")

	st := doc.Stats()
	slog.Info("article saved",
		"article_id", article.ID,
		"sections", st.Sections,
		"columns", st.Columns,
		"images", st.Images,
		"bytes", len(html),
	)

	res := &SaveResult{Article: article, HTML: html}
	if s.revisions != nil {
		res.Revision = s.record(ctx, article.ID, in)
	}
	return res, nil
}

// record stores a revision for a saved article. A save identical to the
// latest revision reuses it. History failures never fail the save.
func (s *Service) record(ctx context.Context, articleID string, in ArticleInput) *models.ArticleRevision {
	latest, err := s.revisions.Latest(ctx, articleID)
	if err != nil {
		slog.Warn("load latest revision failed", "article_id", articleID, "error", err)
	} else if latest != nil && latest.HTML == in.Body && latest.Title == in.Title &&
		latest.Author == in.Author && slices.Equal(latest.Tags, []string(in.Tags)) {
		slog.Debug("revision unchanged", "article_id", articleID, "revision_id", latest.ID)
		return latest
	}

	rev, err := s.revisions.Create(ctx, &models.ArticleRevision{
		ArticleID: articleID,
		Title:     in.Title,
		Author:    in.Author,
		Tags:      in.Tags,
		Sections:  in.Sections,
		HTML:      in.Body,
	})
	if err != nil {
		slog.Warn("record revision failed", "article_id", articleID, "error", err)
		return nil
	}
	if s.keep > 0 {
		if n, err := s.revisions.Prune(ctx, articleID, s.keep); err != nil {
			slog.Warn("prune revisions failed", "article_id", articleID, "error", err)
		} else if n > 0 {
			slog.Debug("revisions pruned", "article_id", articleID, "removed", n)
		}
	}
	return rev
}

func (s *Service) count(result string) {
	if s.saves != nil {
		s.saves.WithLabelValues(result).Inc()
	}
}

// Load opens an article for editing. The structured sections copy is
// preferred; without it the body HTML is parsed; when that yields nothing
// the default document is returned.
func (s *Service) Load(ctx context.Context, id string) (*Editable, error) {
	la, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &AdapterError{Op: "load article", Err: err}
	}

	ed := &Editable{Article: la.Article}
	if doc, ok := decodeSections(la.Sections); ok {
		ed.Document, ed.Source = doc, SourceSections
		return ed, nil
	}
	if len(la.Sections) > 0 {
		slog.Warn("unreadable sections copy, falling back to body", "article_id", id)
	}

	if strings.TrimSpace(la.Article.Body) != "" {
		doc, err := builder.Parse(la.Article.Body)
		if err != nil {
			slog.Warn("parse article body failed", "article_id", id, "error", err)
		} else if len(doc.Sections) > 0 {
			ed.Document, ed.Source = doc, SourceHTML
			return ed, nil
		}
	}

	ed.Document, ed.Source = builder.NewDocument(), SourceDefault
	return ed, nil
}

// decodeSections reads a structured sections copy. It reports false when
// the copy is absent, malformed or empty.
func decodeSections(raw json.RawMessage) (builder.Document, bool) {
	if len(raw) == 0 {
		return builder.Document{}, false
	}
	var doc builder.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return builder.Document{}, false
	}
	if len(doc.Sections) == 0 {
		return builder.Document{}, false
	}
	return doc, true
}

// List returns up to limit articles, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]models.Article, error) {
	articles, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, &AdapterError{Op: "list articles", Err: err}
	}
	return articles, nil
}

// Delete removes an article and its local history.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &AdapterError{Op: "delete article", Err: err}
	}
	slog.Info("article deleted", "article_id", id)

	if s.revisions != nil {
		if err := s.revisions.DeleteByArticle(ctx, models.ArticleGID(id)); err != nil {
			slog.Warn("delete revisions failed", "article_id", id, "error", err)
		}
	}
	return nil
}

// RevisionCount returns how many revisions are recorded for an article.
// It is zero when history is disabled.
func (s *Service) RevisionCount(ctx context.Context, articleID string) (int, error) {
	if s.revisions == nil {
		return 0, nil
	}
	n, err := s.revisions.Count(ctx, models.ArticleGID(articleID))
	if err != nil {
		return 0, fmt.Errorf("count revisions: %w", err)
	}
	return n, nil
}

// Revisions lists the recorded history of an article, newest first.
func (s *Service) Revisions(ctx context.Context, articleID string) ([]*models.ArticleRevision, error) {
	if s.revisions == nil {
		return nil, ErrHistoryDisabled
	}
	return s.revisions.ListByArticle(ctx, models.ArticleGID(articleID))
}

// Restore opens a recorded revision for editing. The document comes from
// the revision's sections copy, never from its HTML.
func (s *Service) Restore(ctx context.Context, revisionID uuid.UUID) (*Editable, error) {
	if s.revisions == nil {
		return nil, ErrHistoryDisabled
	}
	rev, err := s.revisions.FindByID(ctx, revisionID)
	if err != nil {
		return nil, fmt.Errorf("find revision: %w", err)
	}
	if rev == nil {
		return nil, fmt.Errorf("revision %s: %w", revisionID, ErrNotFound)
	}

	var doc builder.Document
	if err := json.Unmarshal(rev.Sections, &doc); err != nil {
		return nil, fmt.Errorf("decode revision sections: %w", err)
	}

	return &Editable{
		Article: models.Article{
			ID:     rev.ArticleID,
			Title:  rev.Title,
			Author: rev.Author,
			Tags:   builder.NormalizeTags(rev.Tags...),
			Body:   rev.HTML,
		},
		Document: doc,
		Source:   SourceRevision,
	}, nil
}
