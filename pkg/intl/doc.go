// Package intl implements the locale-reactive formatting engine: a Manager
// owning the current locale plus its subscriber list, and a Formatter that
// resolves message references into structured parts, plain text, or markdown.
package intl
