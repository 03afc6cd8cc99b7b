// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// MediaSource records where a media asset was found.
type MediaSource string

const (
	MediaSourceFiles    MediaSource = "files"
	MediaSourceProducts MediaSource = "products"
	MediaSourceUpload   MediaSource = "upload"
)

// MediaAsset is an image the editor can place in an image column.
type MediaAsset struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Alt         string      `json:"alt"`
	Filename    string      `json:"filename,omitempty"`
	ContentType string      `json:"content_type,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	SizeBytes   int64       `json:"size_bytes,omitempty"`
	Source      MediaSource `json:"source"`
}

// IsImage returns true if the asset has an image content type. Assets
// without a known content type are assumed to be images, since both
// listing sources only return pictures.
func (m *MediaAsset) IsImage() bool {
	return m.ContentType == "" || strings.HasPrefix(m.ContentType, "image/")
}

// HumanSize returns a human-readable file size string.
func (m *MediaAsset) HumanSize() string {
	return HumanSize(m.SizeBytes)
}

// HumanSize formats a byte count in IEC units (B, KiB, MiB).
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
