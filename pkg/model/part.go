package model

// PartKind discriminates the two shapes of a formatted part.
type PartKind int

const (
	// PartLiteral is a run of plain text.
	PartLiteral PartKind = iota
	// PartRich is rendered rich-element content.
	PartRich
)

// Part is one entry of the structured projection of a formatted message.
// Literal parts carry Text; rich parts carry the opaque Content produced by a
// RichRenderer.
type Part struct {
	Kind    PartKind
	Text    string
	Content any
}

// LiteralPart builds a literal part.
func LiteralPart(text string) Part {
	return Part{Kind: PartLiteral, Text: text}
}

// RichPart builds a rich part holding rendered content.
func RichPart(content any) Part {
	return Part{Kind: PartRich, Content: content}
}

// String returns the plain text of a part: literal text as-is, rich content
// through its fallback string form.
func (p Part) String() string {
	if p.Kind == PartLiteral {
		return p.Text
	}
	return ContentText(p.Content)
}

// PartsText concatenates the plain text of a part sequence.
func PartsText(parts []Part) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0].String()
	}
	var out []byte
	for _, part := range parts {
		out = append(out, part.String()...)
	}
	return string(out)
}
