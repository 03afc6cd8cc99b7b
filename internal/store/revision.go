// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists local article history in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blogbuilder/internal/models"
)

// revisionColumns lists all columns for article_revisions SELECTs.
const revisionColumns = `id, article_id, title, author, tags, sections, html, size_bytes, created_at`

// RevisionStore provides access to article revisions in PostgreSQL.
type RevisionStore struct {
	db *sql.DB
}

// NewRevisionStore creates a new RevisionStore backed by the given database.
func NewRevisionStore(db *sql.DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// scanRevision scans a single article_revisions row.
func scanRevision(scanner interface{ Scan(...any) error }) (*models.ArticleRevision, error) {
	var (
		r        models.ArticleRevision
		tags     string
		sections string
	)
	err := scanner.Scan(
		&r.ID, &r.ArticleID, &r.Title, &r.Author, &tags,
		&sections, &r.HTML, &r.SizeBytes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	r.Sections = []byte(sections)
	return &r, nil
}

// Create inserts a revision and returns it with the generated ID and timestamp.
func (s *RevisionStore) Create(ctx context.Context, rev *models.ArticleRevision) (*models.ArticleRevision, error) {
	sections := string(rev.Sections)
	if sections == "" {
		sections = "[]"
	}
	// Tags are kept as a JSON array; a tag may itself contain a comma.
	tags := rev.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO article_revisions (article_id, title, author, tags, sections, html, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+revisionColumns,
		rev.ArticleID, rev.Title, rev.Author, string(tagsJSON), sections, rev.HTML, int64(len(rev.HTML)),
	)
	r, err := scanRevision(row)
	if err != nil {
		return nil, fmt.Errorf("create revision: %w", err)
	}
	return r, nil
}

// ListByArticle returns all revisions of an article, newest first.
func (s *RevisionStore) ListByArticle(ctx context.Context, articleID string) ([]*models.ArticleRevision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = $1
		ORDER BY created_at DESC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*models.ArticleRevision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// FindByID returns a single revision, or nil if it does not exist.
func (s *RevisionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ArticleRevision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE id = $1
	`, id)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find revision: %w", err)
	}
	return r, nil
}

// Latest returns the newest revision of an article, or nil if it has none.
func (s *RevisionStore) Latest(ctx context.Context, articleID string) (*models.ArticleRevision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM article_revisions
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, articleID)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest revision: %w", err)
	}
	return r, nil
}

// Prune keeps the newest keep revisions of an article and deletes the rest.
// It returns the number of rows removed. A keep of zero or less is a no-op.
func (s *RevisionStore) Prune(ctx context.Context, articleID string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM article_revisions
		WHERE article_id = $1 AND id NOT IN (
			SELECT id FROM article_revisions
			WHERE article_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`, articleID, keep)
	if err != nil {
		return 0, fmt.Errorf("prune revisions: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByArticle removes every revision of an article.
func (s *RevisionStore) DeleteByArticle(ctx context.Context, articleID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM article_revisions WHERE article_id = $1`, articleID)
	if err != nil {
		return fmt.Errorf("delete revisions: %w", err)
	}
	return nil
}

// Count returns the number of revisions of an article.
func (s *RevisionStore) Count(ctx context.Context, articleID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM article_revisions WHERE article_id = $1
	`, articleID).Scan(&count)
	return count, err
}
