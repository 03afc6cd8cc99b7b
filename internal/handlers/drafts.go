// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/builder"
	"blogbuilder/internal/draft"
)

var _ DraftStore = (*draft.Store)(nil)

var errDraftsDisabled = errors.New("drafts need Valkey, which is not configured")

// draftResponse is a draft as sent to the editor. Source is set when the
// draft was opened from a stored article or revision.
type draftResponse struct {
	*draft.Draft
	Source blog.Source `json:"source,omitempty"`
}

// loadDraft fetches the {id} draft, writing the error response itself when
// it returns nil.
func (a *API) loadDraft(w http.ResponseWriter, r *http.Request) *draft.Draft {
	if a.drafts == nil {
		writeError(w, errDraftsDisabled.Error(), http.StatusServiceUnavailable)
		return nil
	}
	d, err := a.drafts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return nil
	}
	if d == nil {
		writeError(w, "draft not found", http.StatusNotFound)
		return nil
	}
	return d
}

// CreateDraft starts an editing session. With an articleId the stored
// article is opened; otherwise the draft holds the default document.
func (a *API) CreateDraft(w http.ResponseWriter, r *http.Request) {
	if a.drafts == nil {
		writeError(w, errDraftsDisabled.Error(), http.StatusServiceUnavailable)
		return
	}
	var req struct {
		ArticleID string `json:"articleId"`
		BlogID    string `json:"blogId"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	resp := draftResponse{Draft: &draft.Draft{
		Document: builder.NewDocument(),
		Meta:     draft.Meta{Author: blog.DefaultAuthor, Tags: builder.Tags{}, BlogID: req.BlogID},
	}}
	if req.ArticleID != "" {
		ed, err := a.blog.Load(r.Context(), req.ArticleID)
		if err != nil {
			fail(w, r, err)
			return
		}
		resp.Draft = draftFromEditable(ed)
		resp.Source = ed.Source
	}

	if err := a.drafts.Create(r.Context(), resp.Draft); err != nil {
		fail(w, r, err)
		return
	}
	slog.Info("draft created", "draft_id", resp.ID, "article_id", resp.ArticleID, "source", resp.Source)
	writeJSON(w, http.StatusCreated, resp)
}

// draftFromEditable turns an opened article into a draft.
func draftFromEditable(ed *blog.Editable) *draft.Draft {
	return &draft.Draft{
		ArticleID: ed.Article.ID,
		Document:  ed.Document,
		Meta: draft.Meta{
			Title:   ed.Article.Title,
			Author:  ed.Article.Author,
			Tags:    builder.NormalizeTags(ed.Article.Tags...),
			Excerpt: ed.Article.Summary,
			BlogID:  ed.Article.BlogID,
		},
	}
}

// GetDraft returns a draft.
func (a *API) GetDraft(w http.ResponseWriter, r *http.Request) {
	d := a.loadDraft(w, r)
	if d == nil {
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// opsRequest is a batch of editing operations with optional new metadata.
type opsRequest struct {
	Ops  []builder.Op `json:"ops"`
	Meta *draft.Meta  `json:"meta,omitempty"`
}

// ApplyOps applies a batch of operations to a draft. The batch is atomic:
// when any operation fails the draft is left unchanged.
func (a *API) ApplyOps(w http.ResponseWriter, r *http.Request) {
	d := a.loadDraft(w, r)
	if d == nil {
		return
	}
	var req opsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	doc := d.Document.Clone()
	for i, op := range req.Ops {
		if err := doc.Apply(op); err != nil {
			status, _ := errorStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			writeError(w, fmt.Sprintf("op %d (%s): %v", i, op.Kind, err), status)
			return
		}
	}
	if req.Meta != nil {
		if msg := validateMeta(req.Meta.Title, req.Meta.Author, req.Meta.Excerpt, req.Meta.Tags); msg != "" {
			writeError(w, msg, http.StatusBadRequest)
			return
		}
		d.Meta = *req.Meta
	}
	d.Document = doc

	if err := a.drafts.Put(r.Context(), d); err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// PreviewDraft serializes the draft's document.
func (a *API) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	d := a.loadDraft(w, r)
	if d == nil {
		return
	}
	html, err := a.blog.Render(d.Document)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// SaveDraft publishes the draft to the shop and ends the session.
func (a *API) SaveDraft(w http.ResponseWriter, r *http.Request) {
	d := a.loadDraft(w, r)
	if d == nil {
		return
	}
	if msg := validateMeta(d.Meta.Title, d.Meta.Author, d.Meta.Excerpt, d.Meta.Tags); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	res, err := a.blog.Save(r.Context(), blog.SaveRequest{
		ArticleID: d.ArticleID,
		BlogID:    d.Meta.BlogID,
		Title:     d.Meta.Title,
		Author:    d.Meta.Author,
		Tags:      d.Meta.Tags,
		Excerpt:   d.Meta.Excerpt,
		Document:  d.Document,
	})
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := a.drafts.Delete(r.Context(), d.ID); err != nil {
		slog.Warn("delete saved draft failed", "draft_id", d.ID, "error", err)
	}
	status := http.StatusOK
	if d.ArticleID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

// DeleteDraft discards an editing session.
func (a *API) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if a.drafts == nil {
		writeError(w, errDraftsDisabled.Error(), http.StatusServiceUnavailable)
		return
	}
	if err := a.drafts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
