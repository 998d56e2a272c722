package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	r := New()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "heading and code block",
			input: "# Title\n\n```js\nconst x = 1\n```",
			want:  []string{"<h1", "Title</h1>", "<pre><code class=\"language-js\">"},
		},
		{
			name:  "gfm table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "raw script is dropped",
			input:   "hello\n\n<script>alert(1)</script>",
			want:    []string{"<p>hello</p>"},
			notWant: []string{"<script", "alert(1)</script>"},
		},
		{
			name:    "javascript links are stripped",
			input:   "[click](javascript:alert(1))",
			notWant: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Markdown(tt.input)
			if err != nil {
				t.Fatalf("Markdown() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in output %q", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("unexpected %q in output %q", w, got)
				}
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	r := New()

	tests := []struct {
		input string
		want  string
	}{
		{"plain comment", "plain comment"},
		{"  <b>bold</b> text ", "bold text"},
		{"<script>alert(1)</script>ok", "ok"},
		{"", ""},
		{`Tom & Jerry said "5 < 6"`, `Tom & Jerry said "5 < 6"`},
		{"it's <i>fine</i> & > ok", "it's fine & > ok"},
		{"<b>a &amp; b</b>", "a & b"},
	}
	for _, tt := range tests {
		if got := r.PlainText(tt.input); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
