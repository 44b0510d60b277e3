package model

import "errors"

var (
	// ErrInvalidMessageKind reports a message value that is neither a
	// literal, a resolvable, nor a compiled template.
	ErrInvalidMessageKind = errors.New("model: message is not a literal, resolvable, or compiled message")

	// ErrUnresolvedLocale reports that resolution produced no usable
	// template for the requested locale. It is returned by resolvers, not
	// by the formatting engine itself.
	ErrUnresolvedLocale = errors.New("model: no message variant for locale")
)
