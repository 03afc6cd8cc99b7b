// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package shopify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const testVersion = "2025-07"

// gqlHandler answers one GraphQL operation. It returns the value encoded
// as the response body.
type gqlHandler func(t *testing.T, vars map[string]any) any

// fakeShop is an httptest-backed Admin API. GraphQL requests are routed by
// operation name; REST requests by "METHOD path".
type fakeShop struct {
	t    *testing.T
	srv  *httptest.Server
	gql  map[string]gqlHandler
	rest map[string]func(w http.ResponseWriter)

	mu    sync.Mutex
	calls []string
}

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{
		t:    t,
		gql:  map[string]gqlHandler{},
		rest: map[string]func(http.ResponseWriter){},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeShop) client() *Client {
	return NewClient(Config{AccessToken: "shpat_test", APIVersion: testVersion, BaseURL: f.srv.URL})
}

func (f *fakeShop) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeShop) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeShop) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeShop) serve(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("X-Shopify-Access-Token"); got != "shpat_test" {
		f.t.Errorf("access token header: got %q", got)
	}
	prefix := "/admin/api/" + testVersion + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		f.t.Errorf("unexpected path %q", r.URL.Path)
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	if path != "graphql.json" {
		key := r.Method + " " + path
		f.record(key)
		h, ok := f.rest[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w)
		return
	}

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.t.Errorf("decode graphql request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil || len(doc.Operations) == 0 {
		f.t.Errorf("parse query: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	op := doc.Operations[0].Name
	f.record(op)

	h, ok := f.gql[op]
	if !ok {
		f.t.Errorf("unexpected graphql operation %q", op)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h(f.t, req.Variables))
}

// data wraps v as a successful GraphQL response.
func data(v any) map[string]any {
	return map[string]any{"data": v}
}

func writeJSON(v any) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
}
