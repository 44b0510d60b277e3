// Package intlpipe compiles localized message definitions into deployable
// artifacts and formats the compiled messages at runtime. The root package
// re-exports the pieces most callers need; the subpackages carry the full
// surface.
package intlpipe

import (
	"context"

	"intlpipe/pkg/compiler"
	"intlpipe/pkg/intl"
	"intlpipe/pkg/loader"
	"intlpipe/pkg/model"
	"intlpipe/pkg/pipeline"
)

// Message is the tagged union accepted by the formatting entry points.
type Message = model.Message

// Literal is a message variant formatted as-is.
type Literal = model.Literal

// Values carries per-call placeholder bindings and rich-element renderers.
type Values = model.Values

// Part is one piece of a formatted message.
type Part = model.Part

// RichElement is the structured content handed to rich renderers.
type RichElement = model.RichElement

// RichRenderer converts one rich element into caller-defined content.
type RichRenderer = model.RichRenderer

// Manager owns the active locale and its change subscriptions.
type Manager = intl.Manager

// Formatter formats messages against a Manager's active locale.
type Formatter = intl.Formatter

// NewManager builds a locale manager starting at defaultLocale.
func NewManager(defaultLocale string) *Manager {
	return intl.NewManager(defaultLocale)
}

// NewFormatter binds a formatter to a manager.
func NewFormatter(manager *Manager, options ...intl.Option) *Formatter {
	return intl.NewFormatter(manager, options...)
}

// NewLoader builds a message loader over a locale-to-artifact-path map.
func NewLoader(defaultLocale string, artifacts map[string]string) *loader.Loader {
	return loader.New(defaultLocale, artifacts)
}

// Compile runs one full compilation pass over roots, writing a compiled
// artifact next to every definitions file. It is the programmatic equivalent
// of the CLI's -once mode.
func Compile(ctx context.Context, roots ...string) error {
	service := compiler.New()
	dispatcher := pipeline.NewDispatcher(service)
	opts := pipeline.DefaultOptions(roots...)
	opts.Watch = false
	return pipeline.NewRunner(dispatcher, opts).Run(ctx)
}

// Watch compiles every definitions file under roots and keeps recompiling on
// filesystem changes until ctx is cancelled.
func Watch(ctx context.Context, roots ...string) error {
	service := compiler.New()
	dispatcher := pipeline.NewDispatcher(service)
	return pipeline.NewRunner(dispatcher, pipeline.DefaultOptions(roots...)).Run(ctx)
}
