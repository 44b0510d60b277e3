package template

import (
	"encoding/json"
	"fmt"
)

// NodeKind discriminates compiled template nodes.
type NodeKind int

const (
	// NodeLiteral is a run of plain message text.
	NodeLiteral NodeKind = iota
	// NodePlaceholder is a `{name}` value placeholder.
	NodePlaceholder
	// NodeRich is a named rich element wrapping child nodes.
	NodeRich
)

// Node is one node of a compiled message template. Literal nodes carry Text,
// placeholder nodes carry Name, rich nodes carry Name plus optional
// attributes and children.
type Node struct {
	Kind     NodeKind
	Text     string
	Name     string
	Attrs    map[string]string
	Children []Node
}

// LiteralNode builds a literal node.
func LiteralNode(text string) Node {
	return Node{Kind: NodeLiteral, Text: text}
}

// PlaceholderNode builds a `{name}` placeholder node.
func PlaceholderNode(name string) Node {
	return Node{Kind: NodePlaceholder, Name: name}
}

// RichNode builds a rich element node.
func RichNode(name string, attrs map[string]string, children ...Node) Node {
	return Node{Kind: NodeRich, Name: name, Attrs: attrs, Children: children}
}

const (
	tagLiteral     = "lit"
	tagPlaceholder = "ph"
	tagRich        = "rich"
)

type nodeJSON struct {
	T string            `json:"t"`
	V string            `json:"v"`
	A map[string]string `json:"a,omitempty"`
	C []Node            `json:"c,omitempty"`
}

// MarshalJSON encodes the node in the compact tagged form used by compiled
// artifacts.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{A: n.Attrs, C: n.Children}
	switch n.Kind {
	case NodeLiteral:
		out.T, out.V = tagLiteral, n.Text
	case NodePlaceholder:
		out.T, out.V = tagPlaceholder, n.Name
	case NodeRich:
		out.T, out.V = tagRich, n.Name
	default:
		return nil, fmt.Errorf("template: marshal: unknown node kind %d", n.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged artifact form.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.T {
	case tagLiteral:
		*n = LiteralNode(in.V)
	case tagPlaceholder:
		*n = PlaceholderNode(in.V)
	case tagRich:
		*n = Node{Kind: NodeRich, Name: in.V, Attrs: in.A, Children: in.C}
	default:
		return fmt.Errorf("template: unmarshal: unknown node tag %q", in.T)
	}
	return nil
}
