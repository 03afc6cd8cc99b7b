// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Parse recovers an approximate document from an article body, for
// articles saved without the structured sections copy. It recognises the
// class names written by Serialize:
//
//   - every element whose class attribute contains "section" becomes a
//     section; "two-column" / "three-column" select the layout, anything
//     else is single-column
//   - every descendant with the class "column" becomes a column; a class
//     containing "image" makes it an image column, otherwise a text column
//
// Image columns take src and alt from their first <img>. Text columns keep
// only the element's text content. All ids are freshly generated; style
// maps and the difference between a missing and a rejected image are lost.
func Parse(fragment string) (Document, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	var doc Document
	walk(root, func(n *html.Node) {
		if !strings.Contains(attr(n, "class"), "section") {
			return
		}
		doc.Sections = append(doc.Sections, parseSection(n))
	})
	return doc, nil
}

func parseSection(n *html.Node) Section {
	class := attr(n, "class")
	s := Section{ID: NewSectionID(), Layout: LayoutSingle, Columns: []Column{}}
	switch {
	case strings.Contains(class, string(LayoutTwo)):
		s.Layout = LayoutTwo
	case strings.Contains(class, string(LayoutThree)):
		s.Layout = LayoutThree
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(el *html.Node) {
			if !hasClass(el, "column") {
				return
			}
			s.Columns = append(s.Columns, parseColumn(el))
		})
	}
	return s
}

func parseColumn(n *html.Node) Column {
	if !strings.Contains(attr(n, "class"), "image") {
		return Column{
			ID:      NewColumnID(),
			Type:    ColumnText,
			Content: textContent(n),
			Style:   TextStyle(),
		}
	}

	col := Column{
		ID:    NewColumnID(),
		Type:  ColumnImage,
		Alt:   PlaceholderCaption,
		Style: ImageStyle(),
	}
	if img := findElement(n, "img"); img != nil {
		col.Src = attr(img, "src")
		if alt := attr(img, "alt"); alt != "" {
			col.Alt = alt
		}
	}
	return col
}

// walk visits n and its descendants in document order, calling fn for
// every element node.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// findElement returns the first descendant element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// textContent concatenates all text nodes below n, like the DOM property.
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
