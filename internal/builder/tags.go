// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tags is an article tag list. In JSON it accepts either an array of
// strings or a single comma-separated string; both are normalised.
type Tags []string

// UnmarshalJSON accepts `["a","b"]` or `"a, b"`.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list...)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	*t = ParseTags(s)
	return nil
}

// String joins the tags the way the editor displays them.
func (t Tags) String() string {
	return strings.Join(t, ", ")
}

// ParseTags splits a comma-separated tag string.
func ParseTags(s string) Tags {
	return NormalizeTags(strings.Split(s, ",")...)
}

// NormalizeTags trims every tag and drops empty ones. The result is never nil.
func NormalizeTags(tags ...string) Tags {
	out := make(Tags, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
