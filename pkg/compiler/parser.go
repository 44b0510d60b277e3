package compiler

import (
	"fmt"
	"strings"

	"intlpipe/internal/template"
)

const defineMarker = "defineMessages"

// ParseDefinitions extracts message declarations from a definitions file.
// The recognised shape is a defineMessages({...}) object whose top-level
// entries are `key: 'message text'` pairs; nested objects (message metadata)
// are skipped wholly. Message text is sanitized and compiled into the
// template node form.
func ParseDefinitions(data []byte, path string) ([]Definition, error) {
	src := string(data)
	start := strings.Index(src, defineMarker)
	if start < 0 {
		return nil, fmt.Errorf("compiler: %s: no %s call found", path, defineMarker)
	}
	open := strings.IndexByte(src[start:], '{')
	if open < 0 {
		return nil, fmt.Errorf("compiler: %s: %s has no object argument", path, defineMarker)
	}

	s := &defScanner{src: src, pos: start + open + 1}
	var defs []Definition
	for {
		s.skipNoise()
		if s.done() {
			return nil, fmt.Errorf("compiler: %s: unterminated %s object", path, defineMarker)
		}
		if s.peek() == '}' {
			return defs, nil
		}

		key, ok := s.scanKey()
		if !ok {
			return nil, fmt.Errorf("compiler: %s: malformed entry near offset %d", path, s.pos)
		}
		s.skipNoise()
		if s.done() || s.peek() != ':' {
			return nil, fmt.Errorf("compiler: %s: missing value for key %q", path, key)
		}
		s.pos++
		s.skipNoise()

		switch {
		case s.done():
			return nil, fmt.Errorf("compiler: %s: missing value for key %q", path, key)
		case s.peek() == '\'' || s.peek() == '"' || s.peek() == '`':
			text, err := s.scanString()
			if err != nil {
				return nil, fmt.Errorf("compiler: %s: key %q: %w", path, key, err)
			}
			clean := sanitizeMessageText(text)
			defs = append(defs, Definition{
				Key:   key,
				Raw:   clean,
				Nodes: parseMessageText(clean),
			})
		case s.peek() == '{':
			// Metadata object for this key, not a message. Skip it.
			if err := s.skipBraced(); err != nil {
				return nil, fmt.Errorf("compiler: %s: key %q: %w", path, key, err)
			}
		default:
			s.skipScalar()
		}

		s.skipNoise()
		if !s.done() && s.peek() == ',' {
			s.pos++
		}
	}
}

type defScanner struct {
	src string
	pos int
}

func (s *defScanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *defScanner) peek() byte {
	return s.src[s.pos]
}

// skipNoise advances past whitespace and // or /* */ comments.
func (s *defScanner) skipNoise() {
	for !s.done() {
		switch {
		case s.peek() == ' ' || s.peek() == '\t' || s.peek() == '\n' || s.peek() == '\r':
			s.pos++
		case strings.HasPrefix(s.src[s.pos:], "//"):
			if idx := strings.IndexByte(s.src[s.pos:], '\n'); idx >= 0 {
				s.pos += idx + 1
			} else {
				s.pos = len(s.src)
			}
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			if idx := strings.Index(s.src[s.pos+2:], "*/"); idx >= 0 {
				s.pos += idx + 4
			} else {
				s.pos = len(s.src)
			}
		default:
			return
		}
	}
}

func (s *defScanner) scanKey() (string, bool) {
	if s.peek() == '\'' || s.peek() == '"' {
		key, err := s.scanString()
		return key, err == nil && key != ""
	}
	start := s.pos
	for !s.done() && isKeyByte(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return s.src[start:s.pos], true
}

func isKeyByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// scanString consumes a quoted string, decoding the common escapes.
func (s *defScanner) scanString() (string, error) {
	quote := s.peek()
	s.pos++
	var out strings.Builder
	for !s.done() {
		c := s.peek()
		switch {
		case c == quote:
			s.pos++
			return out.String(), nil
		case c == '\\' && s.pos+1 < len(s.src):
			next := s.src[s.pos+1]
			switch next {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			default:
				out.WriteByte(next)
			}
			s.pos += 2
		default:
			out.WriteByte(c)
			s.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

// skipBraced consumes a balanced {...} block, honouring strings inside it.
func (s *defScanner) skipBraced() error {
	depth := 0
	for !s.done() {
		switch c := s.peek(); c {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			s.pos++
			if depth == 0 {
				return nil
			}
		case '\'', '"', '`':
			if _, err := s.scanString(); err != nil {
				return err
			}
		default:
			s.pos++
		}
	}
	return fmt.Errorf("unterminated object")
}

// skipScalar consumes a non-string, non-object value up to the entry
// boundary.
func (s *defScanner) skipScalar() {
	for !s.done() && s.peek() != ',' && s.peek() != '}' {
		s.pos++
	}
}

// parseMessageText compiles message text into the node form. It recognises
// `{name}` placeholders and the inline rich subset carried by message
// definitions: **strong**, *emphasis*, `code`, ~~strikethrough~~, and
// [label](target) links, mapped to the rich element names b, i, code, del,
// and link. Unterminated markers fall back to literal text; a backslash
// escapes the next character.
func parseMessageText(text string) []template.Node {
	s := &messageScanner{src: text}
	return s.parseInline("")
}

type messageScanner struct {
	src string
	pos int
}

func (s *messageScanner) parseInline(terminator string) []template.Node {
	var nodes []template.Node
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			nodes = append(nodes, template.LiteralNode(literal.String()))
			literal.Reset()
		}
	}

	for s.pos < len(s.src) {
		rest := s.src[s.pos:]
		if terminator != "" && strings.HasPrefix(rest, terminator) {
			break
		}

		c := rest[0]
		switch {
		case c == '\\' && len(rest) > 1:
			literal.WriteByte(rest[1])
			s.pos += 2
		case c == '{':
			if name, ok := s.scanPlaceholder(); ok {
				flush()
				nodes = append(nodes, template.PlaceholderNode(name))
				continue
			}
			literal.WriteByte(c)
			s.pos++
		case strings.HasPrefix(rest, "**"):
			if children, ok := s.scanDelimited("**"); ok {
				flush()
				nodes = append(nodes, template.RichNode("b", nil, children...))
				continue
			}
			literal.WriteString("**")
			s.pos += 2
		case strings.HasPrefix(rest, "~~"):
			if children, ok := s.scanDelimited("~~"); ok {
				flush()
				nodes = append(nodes, template.RichNode("del", nil, children...))
				continue
			}
			literal.WriteString("~~")
			s.pos += 2
		case c == '*':
			if children, ok := s.scanDelimited("*"); ok {
				flush()
				nodes = append(nodes, template.RichNode("i", nil, children...))
				continue
			}
			literal.WriteByte('*')
			s.pos++
		case c == '`':
			if content, ok := s.scanCodeSpan(); ok {
				flush()
				nodes = append(nodes, template.RichNode("code", nil, template.LiteralNode(content)))
				continue
			}
			literal.WriteByte('`')
			s.pos++
		case c == '[':
			if node, ok := s.scanLink(); ok {
				flush()
				nodes = append(nodes, node)
				continue
			}
			literal.WriteByte('[')
			s.pos++
		default:
			literal.WriteByte(c)
			s.pos++
		}
	}
	flush()
	return nodes
}

// scanPlaceholder consumes `{name}` when name is a valid placeholder
// identifier, leaving the scanner untouched otherwise.
func (s *messageScanner) scanPlaceholder() (string, bool) {
	end := strings.IndexByte(s.src[s.pos:], '}')
	if end < 0 {
		return "", false
	}
	name := s.src[s.pos+1 : s.pos+end]
	if name == "" || !isPlaceholderName(name) {
		return "", false
	}
	s.pos += end + 1
	return name, true
}

func isPlaceholderName(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

// scanDelimited consumes delim, the inline content up to the closing delim,
// and the closing delim itself. When the closer is missing the scanner is
// restored and the opener is treated as literal text by the caller.
func (s *messageScanner) scanDelimited(delim string) ([]template.Node, bool) {
	save := s.pos
	s.pos += len(delim)
	if !strings.Contains(s.src[s.pos:], delim) {
		s.pos = save
		return nil, false
	}
	children := s.parseInline(delim)
	if !strings.HasPrefix(s.src[s.pos:], delim) {
		s.pos = save
		return nil, false
	}
	s.pos += len(delim)
	return children, true
}

// scanCodeSpan consumes `code`; the content is literal, never re-parsed.
func (s *messageScanner) scanCodeSpan() (string, bool) {
	end := strings.IndexByte(s.src[s.pos+1:], '`')
	if end < 0 {
		return "", false
	}
	content := s.src[s.pos+1 : s.pos+1+end]
	s.pos += end + 2
	return content, true
}

// scanLink consumes [label](target). The label is parsed recursively; the
// target is literal.
func (s *messageScanner) scanLink() (template.Node, bool) {
	save := s.pos
	s.pos++
	label := s.parseInline("]")
	if !strings.HasPrefix(s.src[s.pos:], "](") {
		s.pos = save
		return template.Node{}, false
	}
	s.pos += 2
	end := strings.IndexByte(s.src[s.pos:], ')')
	if end < 0 {
		s.pos = save
		return template.Node{}, false
	}
	target := s.src[s.pos : s.pos+end]
	s.pos += end + 1
	attrs := map[string]string{"target": target}
	return template.RichNode("link", attrs, label...), true
}
