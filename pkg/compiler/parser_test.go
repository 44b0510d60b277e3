package compiler_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"intlpipe/internal/template"
	"intlpipe/pkg/compiler"
)

func parseOne(t *testing.T, source string) compiler.Definition {
	t.Helper()
	defs, err := compiler.ParseDefinitions([]byte(source), "test.messages.js")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	return defs[0]
}

func TestParseDefinitions_BasicEntries(t *testing.T) {
	source := `
import {defineMessages} from 'runtime';

export default defineMessages({
	CUSTOM_STATUS: 'Set a custom status',
	'quoted.key': "double quoted",
});
`
	defs, err := compiler.ParseDefinitions([]byte(source), "test.messages.js")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Key != "CUSTOM_STATUS" || defs[0].Raw != "Set a custom status" {
		t.Fatalf("unexpected first definition: %+v", defs[0])
	}
	if defs[1].Key != "quoted.key" || defs[1].Raw != "double quoted" {
		t.Fatalf("unexpected second definition: %+v", defs[1])
	}
}

func TestParseDefinitions_SkipsCommentsAndMetadataObjects(t *testing.T) {
	source := `defineMessages({
	// a leading comment
	first: 'one', /* inline */
	meta: {
		description: 'not a message, has: colons, and {braces}',
	},
	second: 'two',
})`
	defs, err := compiler.ParseDefinitions([]byte(source), "test.messages.js")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected metadata object to be skipped, got %d definitions", len(defs))
	}
	if defs[0].Key != "first" || defs[1].Key != "second" {
		t.Fatalf("unexpected keys: %q, %q", defs[0].Key, defs[1].Key)
	}
}

func TestParseDefinitions_MissingCallRejected(t *testing.T) {
	if _, err := compiler.ParseDefinitions([]byte("export default {}"), "x.messages.js"); err == nil {
		t.Fatal("expected error for a file without defineMessages")
	}
}

func TestParseDefinitions_UnterminatedObjectRejected(t *testing.T) {
	if _, err := compiler.ParseDefinitions([]byte("defineMessages({ a: 'b'"), "x.messages.js"); err == nil {
		t.Fatal("expected error for an unterminated object")
	}
}

func TestParseDefinitions_Placeholders(t *testing.T) {
	def := parseOne(t, `defineMessages({greeting: 'Hello, {name}! You have {count} items.'})`)

	want := []template.Node{
		template.LiteralNode("Hello, "),
		template.PlaceholderNode("name"),
		template.LiteralNode("! You have "),
		template.PlaceholderNode("count"),
		template.LiteralNode(" items."),
	}
	if diff := cmp.Diff(want, def.Nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefinitions_InvalidPlaceholderStaysLiteral(t *testing.T) {
	def := parseOne(t, `defineMessages({m: 'literal {not a name} brace'})`)

	want := []template.Node{template.LiteralNode("literal {not a name} brace")}
	if diff := cmp.Diff(want, def.Nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefinitions_RichSyntax(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []template.Node
	}{
		{
			name: "strong",
			text: "click **here** now",
			want: []template.Node{
				template.LiteralNode("click "),
				template.RichNode("b", nil, template.LiteralNode("here")),
				template.LiteralNode(" now"),
			},
		},
		{
			name: "emphasis",
			text: "*gentle* reminder",
			want: []template.Node{
				template.RichNode("i", nil, template.LiteralNode("gentle")),
				template.LiteralNode(" reminder"),
			},
		},
		{
			name: "strikethrough",
			text: "~~old~~ new",
			want: []template.Node{
				template.RichNode("del", nil, template.LiteralNode("old")),
				template.LiteralNode(" new"),
			},
		},
		{
			name: "code content is literal",
			text: "run `cmd **verbatim**`",
			want: []template.Node{
				template.LiteralNode("run "),
				template.RichNode("code", nil, template.LiteralNode("cmd **verbatim**")),
			},
		},
		{
			name: "link",
			text: "see [the docs](https://example.com)",
			want: []template.Node{
				template.LiteralNode("see "),
				template.RichNode("link",
					map[string]string{"target": "https://example.com"},
					template.LiteralNode("the docs")),
			},
		},
		{
			name: "nested strong inside link label",
			text: "[**bold** label](x)",
			want: []template.Node{
				template.RichNode("link",
					map[string]string{"target": "x"},
					template.RichNode("b", nil, template.LiteralNode("bold")),
					template.LiteralNode(" label")),
			},
		},
		{
			name: "placeholder inside strong",
			text: "**{count} unread**",
			want: []template.Node{
				template.RichNode("b", nil,
					template.PlaceholderNode("count"),
					template.LiteralNode(" unread")),
			},
		},
		{
			name: "unterminated strong is literal",
			text: "just **an asterisk pair",
			want: []template.Node{template.LiteralNode("just **an asterisk pair")},
		},
		{
			// One backslash survives the string-literal escape and then
			// escapes the marker itself.
			name: "escaped marker is literal",
			text: `a \\* star`,
			want: []template.Node{template.LiteralNode("a * star")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := parseOne(t, `defineMessages({m: '`+tc.text+`'})`)
			if diff := cmp.Diff(tc.want, def.Nodes); diff != "" {
				t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDefinitions_StripsRawHTML(t *testing.T) {
	def := parseOne(t, `defineMessages({m: 'hello <script>alert(1)</script>world'})`)
	if def.Raw != "hello world" {
		t.Fatalf("expected markup stripped, got %q", def.Raw)
	}
}

func TestParseDefinitions_ComparisonTextSurvivesSanitizing(t *testing.T) {
	def := parseOne(t, `defineMessages({m: 'requires 1 < 2 members'})`)
	if def.Raw != "requires 1 < 2 members" {
		t.Fatalf("expected plain comparison text untouched, got %q", def.Raw)
	}
}

func TestParseDefinitions_EscapeSequences(t *testing.T) {
	def := parseOne(t, `defineMessages({m: 'line one\nline two\tend'})`)
	if def.Raw != "line one\nline two\tend" {
		t.Fatalf("unexpected decoded text %q", def.Raw)
	}
}
