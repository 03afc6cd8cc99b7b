// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/builder"
	"blogbuilder/internal/render"
)

// Admin groups the server-rendered admin pages.
type Admin struct {
	renderer *render.Renderer
	blog     *blog.Service
	shop     string
}

// NewAdmin creates the admin page handlers. shop is the store's
// myshopify.com domain, used for links into the Shopify admin.
func NewAdmin(renderer *render.Renderer, svc *blog.Service, shop string) *Admin {
	return &Admin{renderer: renderer, blog: svc, shop: shop}
}

// BlogList renders the article list. A failing shop shows an error flash
// over an empty list rather than an error page.
func (a *Admin) BlogList(w http.ResponseWriter, r *http.Request) {
	data := &render.PageData{
		Title:   "Blog posts",
		Section: "blog",
		Shop:    a.shop,
		Data:    map[string]any{},
	}

	articles, err := a.blog.List(r.Context(), defaultListLimit)
	if err != nil {
		slog.Error("list articles failed", "error", err)
		data.Flashes = append(data.Flashes, render.Flash{Type: "error", Message: "Could not load blog posts: " + err.Error()})
	} else {
		data.Data["Articles"] = articles
	}
	a.renderer.Page(w, r, "blog_list", data)
}

// BlogPreview renders one article the way the storefront shows it, from
// the document the editor would open.
func (a *Admin) BlogPreview(w http.ResponseWriter, r *http.Request) {
	ed, err := a.blog.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, blog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load article failed", "error", err)
		http.Error(w, "Could not load the article.", http.StatusBadGateway)
		return
	}

	html, err := a.blog.Render(ed.Document)
	if err != nil && !errors.Is(err, builder.ErrNoValidContent) {
		slog.Error("render article failed", "article_id", ed.Article.ID, "error", err)
		http.Error(w, "Could not render the article.", http.StatusInternalServerError)
		return
	}

	revisions, err := a.blog.RevisionCount(r.Context(), ed.Article.ID)
	if err != nil {
		slog.Warn("count revisions failed", "article_id", ed.Article.ID, "error", err)
	}

	a.renderer.Page(w, r, "blog_preview", &render.PageData{
		Title:   ed.Article.Title,
		Section: "blog",
		Shop:    a.shop,
		Data: map[string]any{
			"Article": ed.Article,
			// Serialize escapes attribute values; text columns carry
			// editor markup.
			"HTML":      template.HTML(html),
			"Source":    ed.Source,
			"History":   a.blog.HistoryEnabled(),
			"Revisions": revisions,
		},
	})
}
