// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the blog builder: the JSON
// API used by the editor, the public storefront endpoint and the
// server-rendered admin pages. Handlers receive their dependencies through
// the handler structs.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/builder"
	"blogbuilder/internal/cache"
	"blogbuilder/internal/draft"
	"blogbuilder/internal/quickview"
)

// maxJSONBody bounds request bodies of the JSON API. A document with
// inline data: images can be large.
const maxJSONBody = 8 << 20

// DraftStore keeps editing sessions. *draft.Store implements it.
type DraftStore interface {
	Create(ctx context.Context, d *draft.Draft) error
	Get(ctx context.Context, id string) (*draft.Draft, error)
	Put(ctx context.Context, d *draft.Draft) error
	Delete(ctx context.Context, id string) error
}

// Uploader stores uploaded images in a public bucket. *storage.Client
// implements it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	ExtractKey(rawURL string) (string, bool)
}

// Deps are the dependencies of the API handlers. Drafts, Uploader and both
// caches are optional.
type Deps struct {
	Blog       *blog.Service
	Drafts     DraftStore
	Media      blog.MediaSource
	Uploader   Uploader
	Quickview  *quickview.Service
	QVCache    *cache.ResponseCache
	MediaCache *cache.ResponseCache
}

// API groups the JSON API handlers.
type API struct {
	blog       *blog.Service
	drafts     DraftStore
	media      blog.MediaSource
	uploader   Uploader
	quickview  *quickview.Service
	qvCache    *cache.ResponseCache
	mediaCache *cache.ResponseCache
}

// NewAPI creates the API handler group.
func NewAPI(d Deps) *API {
	return &API{
		blog:       d.Blog,
		drafts:     d.Drafts,
		media:      d.Media,
		uploader:   d.Uploader,
		quickview:  d.Quickview,
		qvCache:    d.QVCache,
		mediaCache: d.MediaCache,
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// decodeJSON reads a JSON request body into v. An empty body leaves v
// unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// errorStatus maps an error from the services to a status code and the
// message shown to the editor.
func errorStatus(err error) (int, string) {
	var adapterErr *blog.AdapterError
	switch {
	case errors.Is(err, blog.ErrMissingTitle):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, builder.ErrNoValidContent):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, blog.ErrNotFound), errors.Is(err, builder.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, builder.ErrUnknownOp), errors.Is(err, quickview.ErrInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, blog.ErrHistoryDisabled):
		return http.StatusNotImplemented, err.Error()
	case errors.As(err, &adapterErr):
		return http.StatusBadGateway, adapterErr.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// fail writes err as a JSON error response. Unexpected errors are logged.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, msg, status)
}
