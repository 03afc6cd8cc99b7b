package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestNewUnconfigured(t *testing.T) {
	c, err := New(Config{Endpoint: "http://s3.local", Bucket: "media"})
	if err != nil || c != nil {
		t.Errorf("got %v, %v; want nil, nil", c, err)
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"path style", Config{Endpoint: "https://fsn1.example.com/"}, "https://fsn1.example.com/media/blog/a.jpg"},
		{"public url", Config{Endpoint: "https://fsn1.example.com", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/blog/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.AccessKey, tt.cfg.SecretKey, tt.cfg.Bucket = "ak", "sk", "media"
			c, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got := c.FileURL("blog/a.jpg")
			if got != tt.want {
				t.Errorf("FileURL: got %q, want %q", got, tt.want)
			}
			key, ok := c.ExtractKey(got)
			if !ok || key != "blog/a.jpg" {
				t.Errorf("ExtractKey: got %q, %v", key, ok)
			}
		})
	}

	c, _ := New(Config{Endpoint: "https://s3.local", AccessKey: "a", SecretKey: "s", Bucket: "media"})
	if _, ok := c.ExtractKey("https://cdn.shopify.com/x.jpg"); ok {
		t.Error("foreign URL matched")
	}
}

func TestUpload(t *testing.T) {
	var (
		gotPath string
		gotACL  string
		gotType string
		gotBody string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method: got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotACL = r.Header.Get("X-Amz-Acl")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Config{Endpoint: srv.URL, AccessKey: "ak", SecretKey: "sk", Bucket: "media"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	url, err := c.Upload(context.Background(), "blog/2026/01/x.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != srv.URL+"/media/blog/2026/01/x.png" {
		t.Errorf("url: got %q", url)
	}
	if gotPath != "/media/blog/2026/01/x.png" || gotACL != "public-read" || gotType != "image/png" {
		t.Errorf("request: path=%q acl=%q type=%q", gotPath, gotACL, gotType)
	}
	if !strings.Contains(gotBody, "png-bytes") {
		t.Errorf("body: got %q", gotBody)
	}
}

func TestNewKey(t *testing.T) {
	key := NewKey(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), ".jpg")
	if !regexp.MustCompile(`^blog/2026/03/[0-9a-f-]{36}\.jpg$`).MatchString(key) {
		t.Errorf("NewKey: got %q", key)
	}
}
