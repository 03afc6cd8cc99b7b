// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/cache"
	"blogbuilder/internal/quickview"
)

// GetQuickviewConfig returns the effective quick view settings for the
// admin form, with where they came from.
func (a *API) GetQuickviewConfig(w http.ResponseWriter, r *http.Request) {
	loaded := a.quickview.Load(r.Context(), r.URL.Query().Get("collectionId"))
	writeJSON(w, http.StatusOK, loaded)
}

// SaveQuickviewConfig stores quick view settings on a collection or the
// shop. Fields missing from the posted config keep their defaults.
func (a *API) SaveQuickviewConfig(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Config       quickview.Config `json:"config"`
		CollectionID string           `json:"collectionId"`
	}{Config: quickview.Default()}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	saved, err := a.quickview.Save(r.Context(), req.Config, req.CollectionID)
	if err != nil {
		if !errors.Is(err, quickview.ErrInvalid) {
			err = &blog.AdapterError{Op: "save quickview config", Err: err}
		}
		fail(w, r, err)
		return
	}
	a.qvCache.InvalidateAll(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"saved":  saved,
		"config": req.Config,
	})
}

// ListCollections returns the collections a config can be attached to.
func (a *API) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := a.quickview.Collections(r.Context())
	if err != nil {
		fail(w, r, &blog.AdapterError{Op: "list collections", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": cols})
}

// PublicQuickviewConfig serves the settings to the storefront script. It
// never fails: when reading fails the defaults are served, uncached.
func (a *API) PublicQuickviewConfig(w http.ResponseWriter, r *http.Request) {
	collectionID := r.URL.Query().Get("collectionId")
	key := cache.QuickviewKey(collectionID)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")

	if body, ok := a.qvCache.Get(r.Context(), key); ok {
		w.Header().Set("X-Cache", "HIT")
		w.Write(body)
		return
	}

	loaded := a.quickview.Load(r.Context(), collectionID)
	body, err := json.Marshal(loaded)
	if err != nil {
		fail(w, r, err)
		return
	}
	body = append(body, '\n')
	if loaded.Source != quickview.SourceFallback {
		a.qvCache.Set(r.Context(), key, body)
	}

	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}
