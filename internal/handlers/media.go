// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogbuilder/internal/blog"
	"blogbuilder/internal/imaging"
	"blogbuilder/internal/models"
	"blogbuilder/internal/storage"
)

// maxUploadSize is the largest accepted image upload.
const maxUploadSize = 20 << 20

// mediaCacheKey is the single key the media list is cached under.
const mediaCacheKey = "library"

var _ Uploader = (*storage.Client)(nil)

// ListMedia returns the images the editor can pick from. The list is
// cached briefly since the picker reopens often.
func (a *API) ListMedia(w http.ResponseWriter, r *http.Request) {
	if body, ok := a.mediaCache.Get(r.Context(), mediaCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(body)
		return
	}

	assets, err := a.media.ListMedia(r.Context())
	if err != nil {
		fail(w, r, &blog.AdapterError{Op: "list media", Err: err})
		return
	}
	body, err := json.Marshal(map[string]any{"media": assets})
	if err != nil {
		fail(w, r, err)
		return
	}
	body = append(body, '\n')
	a.mediaCache.Set(r.Context(), mediaCacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

// UploadMedia accepts an image for an image column. The image is
// downscaled to the content width and stored in the bucket; without a
// bucket it comes back as a data: URL, which the serializer renders
// inline.
func (a *API) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, "Invalid upload or file too large (max 20 MB).", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "No file provided.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Failed to read file.", http.StatusInternalServerError)
		return
	}

	img, err := imaging.Fit(data, imaging.MaxWidth)
	if errors.Is(err, imaging.ErrUnsupported) {
		writeError(w, "File type not allowed. Accepted: JPEG, PNG, GIF, WebP.", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("process upload failed", "filename", header.Filename, "error", err)
		writeError(w, "Could not read the image.", http.StatusBadRequest)
		return
	}

	asset := models.MediaAsset{
		Alt:         strings.TrimSpace(r.FormValue("alt")),
		Filename:    header.Filename,
		ContentType: img.ContentType,
		Width:       img.Width,
		Height:      img.Height,
		SizeBytes:   int64(len(img.Data)),
		Source:      models.MediaSourceUpload,
	}

	if a.uploader == nil {
		asset.URL = "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		writeJSON(w, http.StatusCreated, asset)
		return
	}

	key := storage.NewKey(time.Now().UTC(), imaging.Extension(img.ContentType))
	url, err := a.uploader.Upload(r.Context(), key, img.ContentType, img.Data)
	if err != nil {
		slog.Error("upload to bucket failed", "key", key, "error", err)
		writeError(w, "Failed to store the file.", http.StatusBadGateway)
		return
	}
	asset.ID, asset.URL = key, url

	slog.Info("media uploaded",
		"key", key,
		"filename", header.Filename,
		"size", models.HumanSize(asset.SizeBytes),
		"resized", img.Resized,
	)
	writeJSON(w, http.StatusCreated, asset)
}

// DeleteMedia removes an uploaded image from the bucket. Only URLs that
// point into the bucket are accepted.
func (a *API) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if a.uploader == nil {
		writeError(w, "Object storage is not configured.", http.StatusServiceUnavailable)
		return
	}
	key, ok := a.uploader.ExtractKey(r.URL.Query().Get("url"))
	if !ok {
		writeError(w, "Not an uploaded image.", http.StatusBadRequest)
		return
	}
	if err := a.uploader.Delete(r.Context(), key); err != nil {
		slog.Error("delete from bucket failed", "key", key, "error", err)
		writeError(w, "Failed to delete the file.", http.StatusBadGateway)
		return
	}
	slog.Info("media deleted", "key", key)
	w.WriteHeader(http.StatusNoContent)
}
