// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNoValidContent is returned by Serialize when no section survives validation.
var ErrNoValidContent = errors.New("no valid sections to save")

// Option configures Serialize.
type Option func(*serializeOptions)

type serializeOptions struct {
	policy *bluemonday.Policy
}

// WithSanitizer runs text column content through bluemonday's UGC policy
// before it is written. Without it, text content is emitted verbatim so that
// editors can embed their own markup.
func WithSanitizer() Option {
	return func(o *serializeOptions) {
		o.policy = bluemonday.UGCPolicy()
	}
}

// Validate returns a copy of doc holding only renderable content. Sections
// without an id, a known layout or a columns list are dropped; columns
// without an id or a known variant are dropped; sections left with no
// columns are dropped. Image columns without a src are kept so they render
// as a visible placeholder.
func Validate(doc Document) Document {
	var out Document
	for _, s := range doc.Sections {
		if s.ID == "" || !s.Layout.Valid() || s.Columns == nil {
			continue
		}
		kept := make([]Column, 0, len(s.Columns))
		for _, c := range s.Columns {
			if c.ID == "" || !c.Type.Valid() {
				continue
			}
			kept = append(kept, c.clone())
		}
		if len(kept) == 0 {
			continue
		}
		s.Columns = kept
		out.Sections = append(out.Sections, s)
	}
	return out
}

// Serialize renders the document into a self-contained HTML fragment: one
// global <style> block followed by a "blog-post" wrapper holding every
// section with its own scoped <style> block.
//
// Sections are scoped by position (section-1, section-2, ...); the
// section's own id is kept in a data-section-id attribute only. Serializing
// after a reorder therefore changes the scope ids of unchanged sections.
func Serialize(doc Document, opts ...Option) (string, error) {
	var o serializeOptions
	for _, opt := range opts {
		opt(&o)
	}

	valid := Validate(doc)
	if len(valid.Sections) == 0 {
		return "", ErrNoValidContent
	}

	var b strings.Builder
	b.WriteString(globalCSS)
	b.WriteString(`<div class="blog-post">`)
	for i, s := range valid.Sections {
		writeSection(&b, fmt.Sprintf("section-%d", i+1), s, &o)
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}

func writeSection(b *strings.Builder, scope string, s Section, o *serializeOptions) {
	b.WriteString(sectionCSS(scope, s.Layout))
	fmt.Fprintf(b, `<div id="%s" class="section %s" data-section-id="%s">`,
		scope, s.Layout, html.EscapeString(s.ID))
	for _, c := range s.Columns {
		writeColumn(b, c, o)
	}
	b.WriteString(`</div>`)
}

func writeColumn(b *strings.Builder, c Column, o *serializeOptions) {
	id := html.EscapeString(c.ID)
	switch c.Type {
	case ColumnText:
		content := c.Content
		if o.policy != nil {
			content = o.policy.Sanitize(content)
		}
		fmt.Fprintf(b, `<div class="column text" data-column-id="%s">%s</div>`, id, content)
	case ColumnImage:
		alt := c.Alt
		if alt == "" {
			alt = "Image"
		}
		if !IsRenderableImageSrc(c.Src) {
			fmt.Fprintf(b, `<div class="column image error" data-column-id="%s">`+
				`<div class="image-placeholder" style="%s">`+
				`<p>⚠️ Image not available</p><small>%s</small></div></div>`,
				id, placeholderStyle, html.EscapeString(alt))
			return
		}
		fmt.Fprintf(b, `<div class="column image" data-column-id="%s">`+
			`<img src="%s" alt="%s" style="%s" /></div>`,
			id, html.EscapeString(c.Src), html.EscapeString(alt), html.EscapeString(InlineStyle(c.Style)))
	}
}

// IsRenderableImageSrc reports whether src has one of the accepted URL
// shapes: http(s), data: or a root-relative path.
func IsRenderableImageSrc(src string) bool {
	return strings.HasPrefix(src, "http") ||
		strings.HasPrefix(src, "data:") ||
		strings.HasPrefix(src, "/")
}

// InlineStyle flattens a style map into "key: value; key: value" with keys
// in sorted order.
func InlineStyle(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k])
	}
	return strings.Join(parts, "; ")
}

const placeholderStyle = "padding: 20px; text-align: center; background: #f8f9fa; " +
	"border: 2px dashed #dee2e6; border-radius: 8px; color: #6c757d;"

// sectionCSS returns the <style> block for one section, scoped by its
// positional id.
func sectionCSS(scope string, layout Layout) string {
	var tmpl string
	switch layout {
	case LayoutTwo:
		tmpl = twoColumnCSS
	case LayoutThree:
		tmpl = threeColumnCSS
	default:
		tmpl = singleColumnCSS
	}
	return strings.ReplaceAll(tmpl, "{scope}", "#"+scope)
}

const globalCSS = `<style>
.blog-post { max-width: 1200px; margin: 0 auto; padding: 20px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
.column { box-sizing: border-box; margin: 0; }
.column.text { font-size: 16px; line-height: 1.6; }
.column.text p { margin: 0 0 16px 0; }
.column.text p:last-child { margin-bottom: 0; }
</style>`

const twoColumnCSS = `<style>
{scope}.section.two-column { display: flex; flex-wrap: nowrap; gap: 20px; margin-bottom: 30px; width: 100%; }
{scope}.section.two-column .column { flex: 1 1 0; min-width: 0; box-sizing: border-box; width: calc(50% - 10px); }
{scope}.section.two-column .column.text { padding: 20px; background: #f8f9fa; border-radius: 8px; border: 1px solid #e9ecef; word-wrap: break-word; overflow-wrap: break-word; }
{scope}.section.two-column .column.image { display: flex; align-items: center; justify-content: center; }
{scope}.section.two-column .column.image img { width: 100%; height: auto; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); object-fit: cover; }
{scope}.section.two-column .column.image.error .image-placeholder { min-height: 120px; display: flex; flex-direction: column; align-items: center; justify-content: center; }
@media (max-width: 768px) {
{scope}.section.two-column { flex-direction: column; gap: 15px; }
{scope}.section.two-column .column { flex: none; width: 100%; }
}
</style>`

const threeColumnCSS = `<style>
{scope}.section.three-column { display: flex; flex-wrap: nowrap; gap: 15px; margin-bottom: 30px; width: 100%; }
{scope}.section.three-column .column { flex: 1 1 0; min-width: 0; box-sizing: border-box; width: calc(33.333% - 10px); }
{scope}.section.three-column .column.text { padding: 15px; background: #f8f9fa; border-radius: 8px; border: 1px solid #e9ecef; word-wrap: break-word; overflow-wrap: break-word; }
{scope}.section.three-column .column.image { display: flex; align-items: center; justify-content: center; }
{scope}.section.three-column .column.image img { width: 100%; height: auto; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); object-fit: cover; }
{scope}.section.three-column .column.image.error .image-placeholder { min-height: 100px; display: flex; flex-direction: column; align-items: center; justify-content: center; }
@media (max-width: 768px) {
{scope}.section.three-column { flex-direction: column; gap: 15px; }
{scope}.section.three-column .column { flex: none; width: 100%; }
}
</style>`

const singleColumnCSS = `<style>
{scope}.section.single-column { margin-bottom: 30px; width: 100%; }
{scope}.section.single-column .column { width: 100%; box-sizing: border-box; }
{scope}.section.single-column .column.text { padding: 20px; background: #f8f9fa; border-radius: 8px; border: 1px solid #e9ecef; word-wrap: break-word; overflow-wrap: break-word; }
{scope}.section.single-column .column.image { display: flex; align-items: center; justify-content: center; }
{scope}.section.single-column .column.image img { width: 100%; height: auto; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
{scope}.section.single-column .column.image.error .image-placeholder { min-height: 150px; display: flex; flex-direction: column; align-items: center; justify-content: center; }
</style>`
