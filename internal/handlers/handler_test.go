// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: in-memory fakes for the shop, drafts and bucket, and a router
// wiring them like the real one.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/draft"
	"blogbuilder/internal/models"
	"blogbuilder/internal/quickview"
	"blogbuilder/internal/render"
	"blogbuilder/internal/shopify"
)

// fakeRepo is an in-memory blog.Repository keyed by global id.
type fakeRepo struct {
	mu       sync.Mutex
	articles map[string]*blog.LoadedArticle
	saved    []blog.ArticleInput
	saveErr  error
	listErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[string]*blog.LoadedArticle{}}
}

func (r *fakeRepo) Save(_ context.Context, in blog.ArticleInput) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.saved = append(r.saved, in)
	id := in.ID
	if id == "" {
		id = fmt.Sprintf("gid://shopify/Article/%d", 100+len(r.saved))
	}
	id = models.ArticleGID(id)
	a := models.Article{ID: id, Title: in.Title, Author: in.Author, Tags: in.Tags, Body: in.Body, Summary: in.Summary, Handle: in.Handle}
	r.articles[id] = &blog.LoadedArticle{Article: a, Sections: in.Sections}
	return &a, nil
}

func (r *fakeRepo) Load(_ context.Context, id string) (*blog.LoadedArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	la, ok := r.articles[models.ArticleGID(id)]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, blog.ErrNotFound)
	}
	return la, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gid := models.ArticleGID(id)
	if _, ok := r.articles[gid]; !ok {
		return fmt.Errorf("article %s: %w", id, blog.ErrNotFound)
	}
	delete(r.articles, gid)
	return nil
}

func (r *fakeRepo) List(_ context.Context, limit int) ([]models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.Article{}
	for _, la := range r.articles {
		if len(out) == limit {
			break
		}
		out = append(out, la.Article)
	}
	return out, nil
}

// put stores an article as if it had been saved earlier.
func (r *fakeRepo) put(a models.Article, sections string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	la := &blog.LoadedArticle{Article: a}
	if sections != "" {
		la.Sections = json.RawMessage(sections)
	}
	r.articles[a.ID] = la
}

// fakeRevisions is an in-memory blog.RevisionStore.
type fakeRevisions struct {
	mu   sync.Mutex
	revs []*models.ArticleRevision
}

func (f *fakeRevisions) Create(_ context.Context, rev *models.ArticleRevision) (*models.ArticleRevision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rev
	cp.ID = uuid.New()
	f.revs = append(f.revs, &cp)
	return &cp, nil
}

func (f *fakeRevisions) FindByID(_ context.Context, id uuid.UUID) (*models.ArticleRevision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.revs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRevisions) ListByArticle(_ context.Context, articleID string) ([]*models.ArticleRevision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.ArticleRevision{}
	for i := len(f.revs) - 1; i >= 0; i-- {
		if f.revs[i].ArticleID == articleID {
			out = append(out, f.revs[i])
		}
	}
	return out, nil
}

func (f *fakeRevisions) Latest(_ context.Context, articleID string) (*models.ArticleRevision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.revs) - 1; i >= 0; i-- {
		if f.revs[i].ArticleID == articleID {
			return f.revs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRevisions) Count(_ context.Context, articleID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.revs {
		if r.ArticleID == articleID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRevisions) Prune(context.Context, string, int) (int64, error) { return 0, nil }

func (f *fakeRevisions) DeleteByArticle(context.Context, string) error { return nil }

// fakeDrafts is an in-memory DraftStore.
type fakeDrafts struct {
	mu     sync.Mutex
	drafts map[string]draft.Draft
	next   int
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[string]draft.Draft{}}
}

func (f *fakeDrafts) Create(_ context.Context, d *draft.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	d.ID = fmt.Sprintf("d%d", f.next)
	f.drafts[d.ID] = *clone(d)
	return nil
}

func (f *fakeDrafts) Get(_ context.Context, id string) (*draft.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	return clone(&d), nil
}

func (f *fakeDrafts) Put(_ context.Context, d *draft.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[d.ID] = *clone(d)
	return nil
}

func (f *fakeDrafts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	return nil
}

// clone copies a draft the way a round trip through Valkey would.
func clone(d *draft.Draft) *draft.Draft {
	cp := *d
	cp.Document = d.Document.Clone()
	return &cp
}

// fakeMedia is a blog.MediaSource.
type fakeMedia struct {
	assets []models.MediaAsset
	err    error
	calls  int
}

func (f *fakeMedia) ListMedia(context.Context) ([]models.MediaAsset, error) {
	f.calls++
	return f.assets, f.err
}

// fakeUploader is an in-memory bucket.
type fakeUploader struct {
	objects map[string][]byte
	err     error
}

const bucketURL = "https://cdn.example.com"

func (f *fakeUploader) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.objects[key] = data
	return bucketURL + "/" + key, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeUploader) ExtractKey(rawURL string) (string, bool) {
	return strings.CutPrefix(rawURL, bucketURL+"/")
}

// fakeMeta is a quickview.Metafields over maps.
type fakeMeta struct {
	mu          sync.Mutex
	shopErr     error
	collections map[string]*shopify.Collection
	values      map[string]string
}

func newFakeMeta() *fakeMeta {
	return &fakeMeta{
		collections: map[string]*shopify.Collection{
			"gid://shopify/Collection/5": {ID: "gid://shopify/Collection/5", Title: "Summer", Handle: "summer"},
		},
		values: map[string]string{},
	}
}

func (f *fakeMeta) ShopID(context.Context) (string, error) {
	return "gid://shopify/Shop/1", f.shopErr
}

func (f *fakeMeta) Collection(_ context.Context, id string) (*shopify.Collection, error) {
	return f.collections[id], nil
}

func (f *fakeMeta) Collections(context.Context, int) ([]shopify.Collection, error) {
	out := []shopify.Collection{}
	for _, c := range f.collections {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeMeta) GetJSON(_ context.Context, owner, _, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shopErr != nil {
		return false, f.shopErr
	}
	v, ok := f.values[owner+"/"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(v), out)
}

func (f *fakeMeta) SetJSON(_ context.Context, owner, _, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[owner+"/"+key] = string(b)
	return nil
}

// testEnv is one wired set of handlers over fakes.
type testEnv struct {
	repo      *fakeRepo
	revisions *fakeRevisions
	drafts    *fakeDrafts
	media     *fakeMedia
	uploader  *fakeUploader
	meta      *fakeMeta
	router    http.Handler
}

type envOption func(*testEnv, *Deps, *blog.Options)

// withoutDrafts runs the API as if Valkey were not configured.
func withoutDrafts() envOption {
	return func(e *testEnv, d *Deps, _ *blog.Options) {
		e.drafts = nil
		d.Drafts = nil
	}
}

// withHistory enables the local revision store.
func withHistory() envOption {
	return func(e *testEnv, _ *Deps, o *blog.Options) {
		e.revisions = &fakeRevisions{}
		o.Revisions = e.revisions
	}
}

// withUploader stores uploads in a fake bucket.
func withUploader() envOption {
	return func(e *testEnv, d *Deps, _ *blog.Options) {
		e.uploader = &fakeUploader{objects: map[string][]byte{}}
		d.Uploader = e.uploader
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	e := &testEnv{
		repo:   newFakeRepo(),
		drafts: newFakeDrafts(),
		media:  &fakeMedia{},
		meta:   newFakeMeta(),
	}
	deps := Deps{Drafts: e.drafts, Media: e.media}
	var bo blog.Options
	for _, o := range opts {
		o(e, &deps, &bo)
	}
	svc := blog.NewService(e.repo, bo)
	deps.Blog = svc
	deps.Quickview = quickview.NewService(e.meta)

	renderer, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	e.router = testRouter(NewAPI(deps), NewAdmin(renderer, svc, "demo.myshopify.com"))
	return e
}

// testRouter mounts the handlers on the same paths as the real router.
func testRouter(api *API, admin *Admin) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/drafts", api.CreateDraft)
		r.Get("/drafts/{id}", api.GetDraft)
		r.Post("/drafts/{id}/ops", api.ApplyOps)
		r.Post("/drafts/{id}/preview", api.PreviewDraft)
		r.Post("/drafts/{id}/save", api.SaveDraft)
		r.Delete("/drafts/{id}", api.DeleteDraft)

		r.Post("/blog/render", api.RenderDocument)
		r.Post("/blog/parse", api.ParseHTML)
		r.Post("/blog/save", api.SaveArticle)
		r.Get("/blog", api.ListArticles)
		r.Get("/blog/{id}", api.GetArticle)
		r.Delete("/blog/{id}", api.DeleteArticle)
		r.Get("/blog/{id}/revisions", api.ListRevisions)
		r.Post("/revisions/{id}/restore", api.RestoreRevision)

		r.Get("/media", api.ListMedia)
		r.Post("/media/upload", api.UploadMedia)
		r.Delete("/media/upload", api.DeleteMedia)

		r.Get("/collections", api.ListCollections)
		r.Get("/quickview/config", api.GetQuickviewConfig)
		r.Post("/quickview/config", api.SaveQuickviewConfig)
	})
	r.Get("/apps/quickview/config", api.PublicQuickviewConfig)
	r.Get("/admin/blog", admin.BlogList)
	r.Get("/admin/blog/{id}", admin.BlogPreview)
	return r
}

// do sends a request with an optional JSON body.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			buf, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("encode body: %v", err)
			}
			rd = bytes.NewReader(buf)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// decode reads a JSON response body into v.
func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rr, &body)
	return body.Error
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}

var errShopDown = errors.New("Shopify is unavailable")
