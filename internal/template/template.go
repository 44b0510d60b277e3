// Package template holds the native compiled-template implementation: the
// node AST the compiler produces, its execution against formatter
// configuration and value bindings, and the JSON artifact codec.
package template

import (
	"intlpipe/pkg/model"
)

// Template executes a compiled node sequence. It implements model.Template.
type Template struct {
	nodes []Node
}

var _ model.Template = (*Template)(nil)

// New wraps a compiled node sequence.
func New(nodes []Node) *Template {
	return &Template{nodes: nodes}
}

// Nodes exposes the underlying node sequence for emitters.
func (t *Template) Nodes() []Node {
	return t.nodes
}

// FormatToParts walks the node tree producing the structured projection.
// Placeholders resolve through values; a missing placeholder renders as the
// raw `{name}` marker. Rich nodes invoke the bound RichRenderer with their
// formatted children, or inline the children unchanged when no renderer is
// bound.
func (t *Template) FormatToParts(cfg *model.FormatConfig, values model.Values) ([]model.Part, error) {
	return executeParts(t.nodes, cfg, values), nil
}

// FormatToString walks the node tree producing the plain-text projection.
// Rich structure is discarded: only child text survives.
func (t *Template) FormatToString(cfg *model.FormatConfig, values model.Values) (string, error) {
	var out []byte
	appendText(&out, t.nodes, cfg, values)
	return string(out), nil
}

func executeParts(nodes []Node, cfg *model.FormatConfig, values model.Values) []model.Part {
	parts := make([]model.Part, 0, len(nodes))
	for _, node := range nodes {
		switch node.Kind {
		case NodeLiteral:
			parts = append(parts, model.LiteralPart(node.Text))
		case NodePlaceholder:
			value, ok := values[node.Name]
			if !ok {
				parts = append(parts, model.LiteralPart(placeholderMarker(node.Name)))
				continue
			}
			if renderer, ok := value.(model.RichRenderer); ok {
				parts = append(parts, model.RichPart(renderer(model.RichElement{Name: node.Name})))
				continue
			}
			parts = append(parts, model.LiteralPart(cfg.FormatValue(value)))
		case NodeRich:
			children := executeParts(node.Children, cfg, values)
			if renderer, ok := values[node.Name].(model.RichRenderer); ok {
				element := model.RichElement{Name: node.Name, Attrs: node.Attrs, Children: children}
				parts = append(parts, model.RichPart(renderer(element)))
				continue
			}
			parts = append(parts, children...)
		}
	}
	return parts
}

func appendText(out *[]byte, nodes []Node, cfg *model.FormatConfig, values model.Values) {
	for _, node := range nodes {
		switch node.Kind {
		case NodeLiteral:
			*out = append(*out, node.Text...)
		case NodePlaceholder:
			value, ok := values[node.Name]
			if !ok {
				*out = append(*out, placeholderMarker(node.Name)...)
				continue
			}
			if _, isRenderer := value.(model.RichRenderer); isRenderer {
				continue
			}
			*out = append(*out, cfg.FormatValue(value)...)
		case NodeRich:
			appendText(out, node.Children, cfg, values)
		}
	}
}

func placeholderMarker(name string) string {
	return "{" + name + "}"
}
