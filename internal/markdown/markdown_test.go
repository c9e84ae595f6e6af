package markdown_test

import (
	"github.com/musoad/iron-quest-sub000/internal/markdown"
	"html/template"
	"testing"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want template.HTML
	}{
		{
			name: "emphasis",
			md:   "Strength work earns **10%** more XP.",
			want: "Strength work earns <strong>10%</strong> more XP.",
		},
		{name: "plain", md: "Keep the plan.", want: "Keep the plan."},
		{name: "raw html is not passed through", md: "<script>alert(1)</script>", want: "<!-- raw HTML omitted -->"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markdown.Inline(tt.md); got != tt.want {
				t.Errorf("Inline(%q) = %q, want %q", tt.md, got, tt.want)
			}
		})
	}
}
