package intl_test

import (
	"testing"

	"intlpipe/internal/template"
	"intlpipe/pkg/intl"
	"intlpipe/pkg/model"
)

func TestFormatToMarkdown_EmitsSyntaxForRichElements(t *testing.T) {
	f := intl.NewFormatter(intl.NewManager("en"))

	cases := []struct {
		name string
		msg  model.Message
		want string
	}{
		{
			name: "bold",
			msg:  compiled(template.LiteralNode("a "), template.RichNode("b", nil, template.LiteralNode("bold"))),
			want: "a **bold**",
		},
		{
			name: "italic",
			msg:  compiled(template.RichNode("i", nil, template.LiteralNode("em"))),
			want: "*em*",
		},
		{
			name: "strikethrough",
			msg:  compiled(template.RichNode("del", nil, template.LiteralNode("gone"))),
			want: "~~gone~~",
		},
		{
			name: "code",
			msg:  compiled(template.RichNode("code", nil, template.LiteralNode("x := 1"))),
			want: "`x := 1`",
		},
		{
			name: "link",
			msg: compiled(template.RichNode("link",
				map[string]string{"target": "https://example.com"},
				template.LiteralNode("docs"))),
			want: "[docs](https://example.com)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.FormatToMarkdown(tc.msg, nil)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatToMarkdown_CallerOverrideWins(t *testing.T) {
	f := intl.NewFormatter(intl.NewManager("en"))

	msg := compiled(template.RichNode("b", nil, template.LiteralNode("x")))

	got, err := f.FormatToMarkdown(msg, model.Values{
		"b": model.RichRenderer(func(el model.RichElement) any { return "__" + el.Text() + "__" }),
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "__x__" {
		t.Fatalf("expected caller override, got %q", got)
	}
}

func TestFormatToMarkdown_PlainMessageMatchesString(t *testing.T) {
	f := intl.NewFormatter(intl.NewManager("en"))

	msg := compiled(template.LiteralNode("no styling here"))

	md, err := f.FormatToMarkdown(msg, nil)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	plain, err := f.FormatToString(msg, nil)
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if md != plain {
		t.Fatalf("projections diverged: %q vs %q", md, plain)
	}
}
