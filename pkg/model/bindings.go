package model

import "fmt"

// Values maps placeholder names to per-call bindings. A binding is either a
// plain value substituted into a `{name}` placeholder or a RichRenderer bound
// to a named rich element.
type Values map[string]any

// RichElement describes one rich-element occurrence handed to a renderer:
// its name, any attributes carried by the compiled template (e.g. a link
// target), and its already-formatted children.
type RichElement struct {
	Name     string
	Attrs    map[string]string
	Children []Part
}

// Text returns the plain text of the element's children.
func (e RichElement) Text() string {
	return PartsText(e.Children)
}

// Attr returns a named attribute, or "" when absent.
func (e RichElement) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// RichRenderer produces the rendered content for one rich element.
type RichRenderer func(el RichElement) any

// RichElements maps rich element names to their renderers. The formatting
// engine owns one such mapping as its defaults, fixed at construction.
type RichElements map[string]RichRenderer

// ContentText reduces opaque rich content to plain text: strings pass
// through, nested part sequences concatenate, everything else goes through
// fmt.
func ContentText(content any) string {
	switch v := content.(type) {
	case nil:
		return ""
	case string:
		return v
	case []Part:
		return PartsText(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
