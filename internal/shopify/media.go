// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package shopify

import (
	"context"
	"fmt"
	"log/slog"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/models"
)

var (
	filesQuery = mustQuery(`
query Files($first: Int!) {
	files(first: $first, query: "media_type:IMAGE") {
		edges {
			node {
				id
				alt
				fileStatus
				... on MediaImage {
					mimeType
					image { url width height altText }
				}
			}
		}
	}
}`)

	productImagesQuery = mustQuery(`
query ProductImages($first: Int!) {
	products(first: $first) {
		edges {
			node {
				title
				images(first: 5) {
					edges { node { id url width height altText } }
				}
			}
		}
	}
}`)
)

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AltText string `json:"altText"`
}

// MediaLibrary lists the shop's images for the picker. It implements
// blog.MediaSource.
type MediaLibrary struct {
	client *Client
}

// NewMediaLibrary creates a MediaLibrary.
func NewMediaLibrary(c *Client) *MediaLibrary {
	return &MediaLibrary{client: c}
}

var _ blog.MediaSource = (*MediaLibrary)(nil)

// ListMedia returns images from the Files API. When that yields nothing
// (or fails), product images are listed instead. An empty list is not an
// error.
func (l *MediaLibrary) ListMedia(ctx context.Context) ([]models.MediaAsset, error) {
	files, err := l.files(ctx)
	if err != nil {
		slog.Warn("files query failed, falling back to product images", "error", err)
	}
	if len(files) > 0 {
		return files, nil
	}
	return l.productImages(ctx)
}

func (l *MediaLibrary) files(ctx context.Context) ([]models.MediaAsset, error) {
	var out struct {
		Files struct {
			Edges []struct {
				Node struct {
					ID         string     `json:"id"`
					Alt        string     `json:"alt"`
					FileStatus string     `json:"fileStatus"`
					MimeType   string     `json:"mimeType"`
					Image      *imageNode `json:"image"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"files"`
	}
	if err := l.client.GraphQL(ctx, filesQuery, map[string]any{"first": 50}, &out); err != nil {
		return nil, err
	}

	assets := make([]models.MediaAsset, 0, len(out.Files.Edges))
	for _, e := range out.Files.Edges {
		n := e.Node
		if n.Image == nil || n.Image.URL == "" {
			continue
		}
		alt := n.Alt
		if alt == "" {
			alt = n.Image.AltText
		}
		assets = append(assets, models.MediaAsset{
			ID:          n.ID,
			URL:         n.Image.URL,
			Alt:         alt,
			ContentType: n.MimeType,
			Width:       n.Image.Width,
			Height:      n.Image.Height,
			Source:      models.MediaSourceFiles,
		})
	}
	return assets, nil
}

func (l *MediaLibrary) productImages(ctx context.Context) ([]models.MediaAsset, error) {
	var out struct {
		Products struct {
			Edges []struct {
				Node struct {
					Title  string `json:"title"`
					Images struct {
						Edges []struct {
							Node imageNode `json:"node"`
						} `json:"edges"`
					} `json:"images"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := l.client.GraphQL(ctx, productImagesQuery, map[string]any{"first": 20}, &out); err != nil {
		return nil, fmt.Errorf("product images: %w", err)
	}

	assets := []models.MediaAsset{}
	for _, p := range out.Products.Edges {
		for _, img := range p.Node.Images.Edges {
			alt := img.Node.AltText
			if alt == "" {
				alt = p.Node.Title
			}
			assets = append(assets, models.MediaAsset{
				ID:     img.Node.ID,
				URL:    img.Node.URL,
				Alt:    alt,
				Width:  img.Node.Width,
				Height: img.Node.Height,
				Source: models.MediaSourceProducts,
			})
		}
	}
	return assets, nil
}
