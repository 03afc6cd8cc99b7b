package handlers

import (
	"net/http"
	"strings"
	"testing"

	"blogbuilder/internal/models"
)

func TestAdminBlogList(t *testing.T) {
	e := newTestEnv(t)
	e.repo.put(models.Article{ID: "gid://shopify/Article/7", Title: "Spring sale", Author: "Ana", IsPublished: true}, "")

	rr := e.do(t, http.MethodGet, "/admin/blog", nil)
	expectStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	for _, want := range []string{"Spring sale", `href="/admin/blog/7"`, "demo.myshopify.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestAdminBlogListShopDown(t *testing.T) {
	e := newTestEnv(t)
	e.repo.listErr = errShopDown

	rr := e.do(t, http.MethodGet, "/admin/blog", nil)
	expectStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if !strings.Contains(body, "flash-error") || !strings.Contains(body, "Shopify is unavailable") {
		t.Error("expected an error flash")
	}
	if !strings.Contains(body, "No blog posts yet.") {
		t.Error("expected the empty list")
	}
}

func TestAdminBlogPreview(t *testing.T) {
	e := newTestEnv(t)
	e.repo.put(models.Article{ID: "gid://shopify/Article/7", Title: "Spring sale", Author: "Ana", Tags: []string{"news"}}, oneSection)

	rr := e.do(t, http.MethodGet, "/admin/blog/7", nil)
	expectStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	for _, want := range []string{
		"<h1>Spring sale</h1>",
		"By Ana",
		"<li>news</li>",
		`<div class="blog-post">`,
		"Hello <b>world</b>",
		"Loaded from sections.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	rr = e.do(t, http.MethodGet, "/admin/blog/8", nil)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestAdminBlogPreviewRevisionCount(t *testing.T) {
	e := newTestEnv(t, withHistory())
	e.repo.put(models.Article{ID: "gid://shopify/Article/7", Title: "Spring sale", Author: "Ana"}, oneSection)
	e.revisions.revs = append(e.revisions.revs,
		&models.ArticleRevision{ArticleID: "gid://shopify/Article/7", Title: "a"},
		&models.ArticleRevision{ArticleID: "gid://shopify/Article/7", Title: "b"},
	)

	rr := e.do(t, http.MethodGet, "/admin/blog/7", nil)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "2 saved revisions.") {
		t.Errorf("body missing revision count")
	}
}
