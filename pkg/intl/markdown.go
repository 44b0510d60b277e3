package intl

import (
	"fmt"

	"intlpipe/pkg/model"
)

// markdownRichElements maps the rich elements emitted by the compiler onto
// their markdown syntax. Unknown rich content falls back to its plain text
// when concatenated.
func markdownRichElements() model.RichElements {
	return model.RichElements{
		"b":    markdownWrap("**"),
		"i":    markdownWrap("*"),
		"del":  markdownWrap("~~"),
		"code": markdownWrap("`"),
		"link": func(el model.RichElement) any {
			return "[" + el.Text() + "](" + el.Attr("target") + ")"
		},
	}
}

func markdownWrap(marker string) model.RichRenderer {
	return func(el model.RichElement) any {
		return marker + el.Text() + marker
	}
}

// FormatToMarkdown resolves msg and renders rich elements as equivalent
// markdown syntax instead of discarding them. Caller-supplied bindings still
// win per key, so an application can override how any element is emitted.
// A message without rich elements produces the same output as
// FormatToString.
func (f *Formatter) FormatToMarkdown(msg model.Message, values model.Values) (string, error) {
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
		parts, err := m.Template.FormatToParts(cfg, mergeRichElements(markdownRichElements(), values))
		if err != nil {
			return "", err
		}
		return model.PartsText(parts), nil
	default:
		return "", fmt.Errorf("intl: format to markdown: %w", model.ErrInvalidMessageKind)
	}
}
