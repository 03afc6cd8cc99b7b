// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package shopify

import (
	"context"
	"testing"

	"blogbuilder/internal/models"
)

func productsResponse() any {
	return data(map[string]any{"products": map[string]any{"edges": []map[string]any{{
		"node": map[string]any{
			"title": "Red Shoe",
			"images": map[string]any{"edges": []map[string]any{
				{"node": map[string]any{"id": "img1", "url": "https://cdn.shopify.com/shoe.jpg", "width": 800, "height": 600, "altText": ""}},
			}},
		},
	}}}})
}

func TestListMediaFromFiles(t *testing.T) {
	shop := newFakeShop(t)
	shop.gql["Files"] = func(t *testing.T, vars map[string]any) any {
		if vars["first"] != float64(50) {
			t.Errorf("first: got %v", vars["first"])
		}
		return data(map[string]any{"files": map[string]any{"edges": []map[string]any{
			{"node": map[string]any{"id": "f1", "alt": "Banner", "fileStatus": "READY", "mimeType": "image/png",
				"image": map[string]any{"url": "https://cdn.shopify.com/banner.png", "width": 1200, "height": 400}}},
			{"node": map[string]any{"id": "f2", "alt": "", "fileStatus": "PROCESSING"}},
		}}})
	}

	assets, err := NewMediaLibrary(shop.client()).ListMedia(context.Background())
	if err != nil {
		t.Fatalf("ListMedia: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("assets: got %d, want 1", len(assets))
	}
	if assets[0].Source != models.MediaSourceFiles || assets[0].Alt != "Banner" || assets[0].Width != 1200 {
		t.Errorf("asset: %+v", assets[0])
	}
	if shop.called("ProductImages") {
		t.Error("fallback used although files were found")
	}
}

func TestListMediaFallsBackToProducts(t *testing.T) {
	tests := []struct {
		name  string
		files gqlHandler
	}{
		{name: "no files", files: func(t *testing.T, _ map[string]any) any {
			return data(map[string]any{"files": map[string]any{"edges": []any{}}})
		}},
		{name: "files error", files: func(t *testing.T, _ map[string]any) any {
			return map[string]any{"errors": []map[string]any{{"message": "Access denied for files field."}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newFakeShop(t)
			shop.gql["Files"] = tt.files
			shop.gql["ProductImages"] = func(t *testing.T, _ map[string]any) any { return productsResponse() }

			assets, err := NewMediaLibrary(shop.client()).ListMedia(context.Background())
			if err != nil {
				t.Fatalf("ListMedia: %v", err)
			}
			if len(assets) != 1 {
				t.Fatalf("assets: got %d, want 1", len(assets))
			}
			a := assets[0]
			if a.Source != models.MediaSourceProducts || a.Alt != "Red Shoe" || a.URL != "https://cdn.shopify.com/shoe.jpg" {
				t.Errorf("asset: %+v", a)
			}
		})
	}
}
