// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging prepares uploaded images for article columns. Images wider
// than the blog's content width are downscaled so the storefront does not
// ship multi-megabyte originals.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxWidth is the widest image kept as uploaded.
	MaxWidth = 1920

	// maxPixels rejects decompression bombs before a full decode.
	maxPixels = 100_000_000

	jpegQuality = 85
)

// ErrUnsupported is returned for content that is not an accepted image.
var ErrUnsupported = errors.New("unsupported image type")

// allowedTypes are the image types accepted for upload.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a processed upload.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	// Resized reports whether Data differs from the upload.
	Resized bool
}

// DetectType sniffs the content type of data and reports whether it is an
// accepted image.
func DetectType(data []byte) (string, error) {
	ct := http.DetectContentType(data)
	if !allowedTypes[ct] {
		return ct, fmt.Errorf("%w: %s", ErrUnsupported, ct)
	}
	return ct, nil
}

// Extension returns the file extension for an accepted content type.
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// Fit constrains data to maxWidth pixels, preserving the aspect ratio.
// Images already narrow enough, and GIFs (to keep animation), are returned
// as uploaded. PNGs stay PNG for transparency; everything else is
// re-encoded as JPEG.
func Fit(data []byte, maxWidth int) (*Image, error) {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}
	ct, err := DetectType(data)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	original := &Image{Data: data, ContentType: ct, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width <= maxWidth || ct == "image/gif" {
		return original, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	height := int(float64(bounds.Dy()) * float64(maxWidth) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	out := &Image{Width: maxWidth, Height: height, Resized: true}
	if ct == "image/png" {
		err = png.Encode(&buf, dst)
		out.ContentType = "image/png"
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
		out.ContentType = "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}
