package model

// Template is a compiled message template. Implementations live behind the
// compiler and loader; the formatting engine only exercises these two
// projections.
type Template interface {
	// FormatToParts produces the ordered structured projection of the
	// template for the given formatter configuration and bindings.
	FormatToParts(cfg *FormatConfig, values Values) ([]Part, error)
	// FormatToString produces the plain-text projection, discarding rich
	// structure but still substituting placeholder values.
	FormatToString(cfg *FormatConfig, values Values) (string, error)
}
