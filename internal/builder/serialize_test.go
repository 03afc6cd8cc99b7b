// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"errors"
	"strings"
	"testing"
)

func TestSerializeDropsInvalidSections(t *testing.T) {
	doc := Document{Sections: []Section{
		{ID: "s1", Layout: LayoutSingle, Columns: []Column{{ID: "c1", Type: ColumnText, Content: "Hello"}}},
		{ID: "", Layout: LayoutSingle, Columns: []Column{{ID: "c2", Type: ColumnText, Content: "lost"}}},
		{ID: "s3", Layout: Layout("grid"), Columns: []Column{{ID: "c3", Type: ColumnText, Content: "lost"}}},
		{ID: "s4", Layout: LayoutTwo},
		{ID: "s5", Layout: LayoutTwo, Columns: []Column{{ID: "", Type: ColumnText, Content: "lost"}}},
	}}

	out, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if n := strings.Count(out, `class="section `); n != 1 {
		t.Errorf("section containers: got %d, want 1", n)
	}
	if strings.Contains(out, "lost") {
		t.Error("output contains content of a dropped section")
	}

	parsed, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Sections) != 1 || len(parsed.Sections[0].Columns) != 1 {
		t.Fatalf("parsed structure: %+v", parsed)
	}
	if got := parsed.Sections[0].Columns[0].Content; got != "Hello" {
		t.Errorf("text content: got %q, want %q", got, "Hello")
	}
}

func TestSerializeNoValidContent(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{name: "empty", doc: Document{}},
		{name: "only empty sections", doc: Document{Sections: []Section{
			{ID: "s1", Layout: LayoutSingle, Columns: []Column{}},
			{ID: "s2", Layout: LayoutTwo},
		}}},
		{name: "only unknown column types", doc: Document{Sections: []Section{
			{ID: "s1", Layout: LayoutSingle, Columns: []Column{{ID: "c1", Type: ColumnType("video")}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Serialize(tt.doc)
			if !errors.Is(err, ErrNoValidContent) {
				t.Errorf("err: got %v, want ErrNoValidContent", err)
			}
			if out != "" {
				t.Errorf("output: got %q, want empty", out)
			}
		})
	}
}

func TestSerializeImageColumns(t *testing.T) {
	tests := []struct {
		name        string
		col         Column
		contains    []string
		notContains []string
	}{
		{
			name:     "absolute url",
			col:      Column{ID: "c", Type: ColumnImage, Src: "https://cdn.shopify.com/a.jpg", Alt: "A cat", Style: ImageStyle()},
			contains: []string{`<img src="https://cdn.shopify.com/a.jpg" alt="A cat" style="height: auto; width: 100%" />`, `class="column image"`},
		},
		{
			name:     "data url",
			col:      Column{ID: "c", Type: ColumnImage, Src: "data:image/png;base64,AAAA"},
			contains: []string{`<img src="data:image/png;base64,AAAA" alt="Image"`},
		},
		{
			name:     "root relative",
			col:      Column{ID: "c", Type: ColumnImage, Src: "/files/a.png", Alt: "x"},
			contains: []string{`<img src="/files/a.png"`},
		},
		{
			name:        "empty src",
			col:         Column{ID: "c", Type: ColumnImage, Alt: "Caption"},
			contains:    []string{`class="column image error"`, "Image not available", "<small>Caption</small>"},
			notContains: []string{"<img"},
		},
		{
			name:        "relative path",
			col:         Column{ID: "c", Type: ColumnImage, Src: "images/a.png", Alt: "rel"},
			contains:    []string{`class="column image error"`, "<small>rel</small>"},
			notContains: []string{"<img"},
		},
		{
			name:     "alt is escaped",
			col:      Column{ID: "c", Type: ColumnImage, Src: "/a.png", Alt: `"><script>`},
			contains: []string{`alt="&#34;&gt;&lt;script&gt;"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Sections: []Section{{ID: "s", Layout: LayoutSingle, Columns: []Column{tt.col}}}}
			out, err := Serialize(doc)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(out, unwanted) {
					t.Errorf("output unexpectedly contains %q", unwanted)
				}
			}
		})
	}
}

func TestSerializeScopesByPosition(t *testing.T) {
	doc := threeSections()
	doc.MoveSection("s3", "s1")

	out, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	wantOrder := []string{
		`<div id="section-1" class="section three-column" data-section-id="s3">`,
		`<div id="section-2" class="section single-column" data-section-id="s1">`,
		`<div id="section-3" class="section two-column" data-section-id="s2">`,
	}
	last := -1
	for _, want := range wantOrder {
		i := strings.Index(out, want)
		if i < 0 {
			t.Fatalf("output missing %q", want)
		}
		if i < last {
			t.Errorf("%q out of order", want)
		}
		last = i
	}

	if !strings.Contains(out, "#section-1.section.three-column {") {
		t.Error("three-column CSS not scoped to section-1")
	}
	if !strings.Contains(out, "#section-3.section.two-column .column { flex: none; width: 100%; }") {
		t.Error("two-column mobile rule not scoped to section-3")
	}
	if strings.Contains(out, "{scope}") {
		t.Error("unreplaced scope placeholder")
	}
}

func TestSerializeGlobalStyleOnce(t *testing.T) {
	out, err := Serialize(threeSections())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.HasPrefix(out, "<style>\n.blog-post {") {
		t.Errorf("output does not start with the global style block: %.40q", out)
	}
	if n := strings.Count(out, ".blog-post {"); n != 1 {
		t.Errorf("global style blocks: got %d, want 1", n)
	}
	if n := strings.Count(out, "<style>"); n != 4 {
		t.Errorf("style blocks: got %d, want 4", n)
	}
	if !strings.HasSuffix(out, "</div></div>") {
		t.Errorf("output not closed by the wrapper: %q", out[len(out)-40:])
	}
}

func TestSerializeTextContent(t *testing.T) {
	doc := Document{Sections: []Section{{ID: "s", Layout: LayoutSingle, Columns: []Column{
		{ID: "c", Type: ColumnText, Content: `<p>Hi <b>there</b></p><script>alert(1)</script>`},
	}}}}

	t.Run("verbatim by default", func(t *testing.T) {
		out, err := Serialize(doc)
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if !strings.Contains(out, `<script>alert(1)</script>`) {
			t.Error("content was altered")
		}
	})

	t.Run("sanitized", func(t *testing.T) {
		out, err := Serialize(doc, WithSanitizer())
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if strings.Contains(out, "<script>") {
			t.Error("script survived sanitizer")
		}
		if !strings.Contains(out, "<p>Hi <b>there</b></p>") {
			t.Error("safe markup was removed")
		}
	})
}

func TestSerializeDoesNotModifyInput(t *testing.T) {
	doc := threeSections()
	doc.Sections = append(doc.Sections, Section{ID: "bad", Layout: Layout("x"), Columns: []Column{}})
	before := doc.Clone()

	if _, err := Serialize(doc); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(doc.Sections) != len(before.Sections) {
		t.Error("Serialize dropped sections from its input")
	}
}

func TestInlineStyle(t *testing.T) {
	tests := []struct {
		style map[string]string
		want  string
	}{
		{style: nil, want: ""},
		{style: map[string]string{"width": "100%"}, want: "width: 100%"},
		{style: map[string]string{"width": "100%", "height": "auto", "border": "0"}, want: "border: 0; height: auto; width: 100%"},
	}
	for _, tt := range tests {
		if got := InlineStyle(tt.style); got != tt.want {
			t.Errorf("InlineStyle(%v) = %q, want %q", tt.style, got, tt.want)
		}
	}
}
