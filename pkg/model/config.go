package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatConfig is the formatter configuration derived from a locale: the
// parsed language tag plus a locale-aware printer used to format placeholder
// values. Instances are immutable; a locale change produces a new config.
type FormatConfig struct {
	Locale  language.Tag
	Printer *message.Printer
}

// NewFormatConfig derives a FormatConfig from a locale identifier. An
// unparseable locale falls back to English rather than failing, matching the
// contract that locale validation happens at resolution time, not here.
func NewFormatConfig(locale string) *FormatConfig {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &FormatConfig{
		Locale:  tag,
		Printer: message.NewPrinter(tag),
	}
}

// FormatValue renders one placeholder value as text using the config's
// locale-aware printer. Strings pass through untouched.
func (c *FormatConfig) FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case Literal:
		return string(v)
	default:
		if c == nil || c.Printer == nil {
			return ContentText(value)
		}
		return c.Printer.Sprintf("%v", v)
	}
}
