// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/builder"
)

// defaultListLimit is how many articles GET /api/blog returns without ?limit.
const defaultListLimit = 50

// RenderDocument serializes a posted document without storing anything.
func (a *API) RenderDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document builder.Document `json:"sections"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}
	html, err := a.blog.Render(req.Document)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// ParseHTML recovers a document from an article body.
func (a *API) ParseHTML(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HTML string `json:"html"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}
	doc, err := builder.Parse(req.HTML)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": doc})
}

// SaveArticle stores an article from a complete save request. It answers
// 201 for a new article and 200 for an update.
func (a *API) SaveArticle(w http.ResponseWriter, r *http.Request) {
	var req blog.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}
	if msg := validateMeta(req.Title, req.Author, req.Excerpt, req.Tags); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	res, err := a.blog.Save(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	status := http.StatusOK
	if req.ArticleID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

// ListArticles returns the most recently updated articles.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 250 {
			writeError(w, "limit must be between 1 and 250", http.StatusBadRequest)
			return
		}
		limit = n
	}
	articles, err := a.blog.List(r.Context(), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// GetArticle opens an article for editing.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	ed, err := a.blog.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ed)
}

// DeleteArticle removes an article from the shop.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := a.blog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRevisions returns an article's local history.
func (a *API) ListRevisions(w http.ResponseWriter, r *http.Request) {
	revs, err := a.blog.Revisions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"revisions": revs})
}

// RestoreRevision opens a revision for editing. When drafts are available
// the revision becomes a new draft; otherwise the editable document is
// returned as-is.
func (a *API) RestoreRevision(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid revision id", http.StatusBadRequest)
		return
	}
	ed, err := a.blog.Restore(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	if a.drafts == nil {
		writeJSON(w, http.StatusOK, ed)
		return
	}

	d := draftFromEditable(ed)
	if err := a.drafts.Create(r.Context(), d); err != nil {
		fail(w, r, err)
		return
	}
	slog.Info("revision restored into draft", "revision_id", id, "draft_id", d.ID, "article_id", d.ArticleID)
	writeJSON(w, http.StatusCreated, draftResponse{Draft: d, Source: ed.Source})
}
