package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "paragraph", in: "Hello", want: "<p>Hello</p>"},
		{name: "emphasis", in: "a *b* **c**", want: "<p>a <em>b</em> <strong>c</strong></p>"},
		{name: "raw html passes through", in: `<span class="x">y</span>`, want: `<span class="x">y</span>`},
		{name: "strikethrough", in: "~~old~~", want: "<del>old</del>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.in)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	got, err := Summary("   \n\t ")
	if err != nil || got != "" {
		t.Errorf("Summary(blank) = %q, %v", got, err)
	}

	got, err = Summary("Summer *sale* starts today\n")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got != "<p>Summer <em>sale</em> starts today</p>" {
		t.Errorf("Summary = %q", got)
	}
}
