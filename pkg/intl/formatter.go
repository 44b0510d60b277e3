package intl

import (
	"fmt"

	"intlpipe/pkg/model"
)

// resolveDepth bounds chained Resolvable hops so a cyclic resolver fails
// instead of spinning.
const resolveDepth = 8

// Option customises a Formatter at construction.
type Option func(*Formatter)

// WithDefaultRichElements installs the formatter's default rich-element
// renderers. The mapping is copied; it cannot be mutated afterwards.
func WithDefaultRichElements(defaults model.RichElements) Option {
	return func(f *Formatter) {
		if len(defaults) == 0 {
			return
		}
		if f.defaults == nil {
			f.defaults = make(model.RichElements, len(defaults))
		}
		for name, renderer := range defaults {
			f.defaults[name] = renderer
		}
	}
}

// Formatter resolves message references against the manager's current locale
// and produces one of three projections: structured parts, plain text, or
// markdown. Calls are synchronous and safe for concurrent use; each call is a
// pure function of the locale pair observed at call time.
type Formatter struct {
	manager  *Manager
	defaults model.RichElements
}

// NewFormatter builds a Formatter bound to the given Manager.
func NewFormatter(manager *Manager, options ...Option) *Formatter {
	f := &Formatter{manager: manager}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// FormatToParts resolves msg and returns its structured projection. Literal
// messages short-circuit to a single-part sequence. For compiled templates
// the effective bindings are the formatter's defaults overridden key-by-key
// by the caller's values, and adjacent literal parts in the output are
// coalesced into single runs.
func (f *Formatter) FormatToParts(msg model.Message, values model.Values) ([]model.Part, error) {
	if lit, ok := msg.(model.Literal); ok {
		return []model.Part{model.LiteralPart(string(lit))}, nil
	}

	locale, cfg := f.manager.snapshot()
	resolved, err := resolve(msg, locale)
	if err != nil {
		return nil, err
	}

	switch m := resolved.(type) {
	case model.Literal:
		return []model.Part{model.LiteralPart(string(m))}, nil
	case model.Compiled:
		parts, err := m.Template.FormatToParts(cfg, mergeRichElements(f.defaults, values))
		if err != nil {
			return nil, err
		}
		return coalesceParts(parts), nil
	default:
		return nil, fmt.Errorf("intl: format to parts: %w", model.ErrInvalidMessageKind)
	}
}

// FormatToString resolves msg and returns its plain-text projection. Default
// rich elements are not consulted: stylistic content is discarded here, not
// rendered.
func (f *Formatter) FormatToString(msg model.Message, values model.Values) (string, error) {
	if lit, ok := msg.(model.Literal); ok {
		return string(lit), nil
	}

	locale, cfg := f.manager.snapshot()
	resolved, err := resolve(msg, locale)
	if err != nil {
		return "", err
	}

	switch m := resolved.(type) {
	case model.Literal:
		return string(m), nil
	case model.Compiled:
		return m.Template.FormatToString(cfg, values)
	default:
		return "", fmt.Errorf("intl: format to string: %w", model.ErrInvalidMessageKind)
	}
}

// String is the zero-binding convenience for messages without placeholders.
// Its output is identical to FormatToString(msg, nil).
func (f *Formatter) String(msg model.Message) (string, error) {
	return f.FormatToString(msg, nil)
}

// resolve walks msg down to a Literal or Compiled form for the given locale.
func resolve(msg model.Message, locale string) (model.Message, error) {
	for i := 0; i < resolveDepth; i++ {
		switch m := msg.(type) {
		case model.Literal, model.Compiled:
			return m, nil
		case model.Resolvable:
			next, err := m.Resolve(locale)
			if err != nil {
				return nil, err
			}
			msg = next
		default:
			return nil, fmt.Errorf("intl: resolve: %w", model.ErrInvalidMessageKind)
		}
	}
	return nil, fmt.Errorf("intl: resolve: chain exceeded %d hops: %w", resolveDepth, model.ErrInvalidMessageKind)
}

// mergeRichElements computes effective bindings for one format call: the
// formatter defaults, overridden key-by-key by caller values. The caller wins
// on collision; keys absent from the caller's mapping keep the default. Both
// inputs are left untouched.
func mergeRichElements(defaults model.RichElements, values model.Values) model.Values {
	if len(defaults) == 0 {
		return values
	}
	merged := make(model.Values, len(defaults)+len(values))
	for name, renderer := range defaults {
		merged[name] = renderer
	}
	for name, value := range values {
		merged[name] = value
	}
	return merged
}

// coalesceParts merges adjacent literal parts into single runs in one pass.
// A literal run never crosses a rich boundary and the first part is never
// merged backward.
func coalesceParts(parts []model.Part) []model.Part {
	if len(parts) < 2 {
		return parts
	}
	out := make([]model.Part, 0, len(parts))
	accumulating := false
	for _, part := range parts {
		if accumulating && part.Kind == model.PartLiteral {
			out[len(out)-1].Text += part.Text
			continue
		}
		out = append(out, part)
		accumulating = part.Kind == model.PartLiteral
	}
	return out
}
