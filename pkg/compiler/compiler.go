package compiler

import (
	"context"
	"fmt"
	"os"

	"intlpipe/pkg/discovery"
)

// Service is the compiler boundary the pipeline drives. Implementations
// parse definition files into a shared keyed database and emit compiled
// artifacts per locale and serialization format.
type Service interface {
	// IsDefinitionsFile reports whether path follows the definition-file
	// naming convention.
	IsDefinitionsFile(path string) bool
	// ProcessDefinitionsFile parses path and registers its declarations
	// in the shared database. Malformed input is a compile error.
	ProcessDefinitionsFile(ctx context.Context, path string) error
	// Precompile emits one compiled artifact for one locale and format.
	Precompile(ctx context.Context, path, locale, outPath, format string) error
}

// Option customises a Compiler at construction.
type Option func(*Compiler)

// WithDatabase shares an existing message database across compilers.
func WithDatabase(db *Database) Option {
	return func(c *Compiler) {
		if db != nil {
			c.db = db
		}
	}
}

// WithEmitters replaces the built-in emitter registry.
func WithEmitters(registry *Registry) Option {
	return func(c *Compiler) {
		if registry != nil {
			c.emitters = registry
		}
	}
}

// Compiler is the built-in Service implementation backed by the in-process
// message database and emitter registry.
type Compiler struct {
	db       *Database
	emitters *Registry
}

var _ Service = (*Compiler)(nil)

// New constructs a Compiler. Missing dependencies are initialised with the
// built-in implementations so callers can start with a single constructor
// call.
func New(options ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.db == nil {
		c.db = NewDatabase()
	}
	if c.emitters == nil {
		c.emitters = defaultRegistry()
	}
	return c
}

// Database exposes the shared message database.
func (c *Compiler) Database() *Database {
	return c.db
}

// IsDefinitionsFile reports whether path is a definitions-file candidate.
func (c *Compiler) IsDefinitionsFile(path string) bool {
	return discovery.IsDefinitionFile(path)
}

// ProcessDefinitionsFile reads and parses one definitions file, replacing
// whatever the path contributed to the database before.
func (c *Compiler) ProcessDefinitionsFile(ctx context.Context, path string) error {
	data, err := readFile(ctx, path)
	if err != nil {
		return err
	}
	defs, err := ParseDefinitions(data, path)
	if err != nil {
		return err
	}
	return c.db.ReplaceFile(path, defs)
}

// Precompile serializes the declarations of one processed path for one
// locale and format, writing the artifact to outPath. Emitting the same
// unchanged input twice produces identical bytes.
func (c *Compiler) Precompile(ctx context.Context, path, locale, outPath, format string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	messages, ok := c.db.Messages(path)
	if !ok {
		return fmt.Errorf("compiler: %s has not been processed", path)
	}
	emitter, err := c.emitters.Get(format)
	if err != nil {
		return err
	}
	data, err := emitter.Emit(locale, messages)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("compiler: write %s: %w", outPath, err)
	}
	return nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("compiler: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiler: read %s: %w", path, err)
	}
	return data, nil
}
