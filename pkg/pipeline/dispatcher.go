package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"intlpipe/pkg/codegen"
	"intlpipe/pkg/compiler"
	"intlpipe/pkg/discovery"
)

const (
	defaultLocale = "en"
)

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLocale sets the target locale compiled artifacts are emitted for.
func WithLocale(locale string) DispatcherOption {
	return func(d *Dispatcher) {
		if locale != "" {
			d.locale = locale
		}
	}
}

// WithFormat sets the artifact serialization format.
func WithFormat(format string) DispatcherOption {
	return func(d *Dispatcher) {
		if format != "" {
			d.format = format
		}
	}
}

// WithLogger routes compile diagnostics through the given logger.
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKeyGenerator emits a generated key-constants file next to each
// successfully compiled definitions file. The database supplies the key sets.
func WithKeyGenerator(gen *codegen.Generator, db *compiler.Database) DispatcherOption {
	return func(d *Dispatcher) {
		d.keygen = gen
		d.keyDB = db
	}
}

// Dispatcher compiles one definition file at a time with per-file fault
// isolation: every failure is logged and swallowed so the surrounding
// scan/watch loop keeps processing other files. Work for a given path is
// serialized through a keyed lock, making concurrent scan and watch
// dispatches for the same file safe.
type Dispatcher struct {
	service compiler.Service
	locale  string
	format  string
	logger  *zap.Logger
	keygen  *codegen.Generator
	keyDB   *compiler.Database

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDispatcher builds a Dispatcher around a compiler service.
func NewDispatcher(service compiler.Service, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		service: service,
		locale:  defaultLocale,
		format:  compiler.FormatJSON,
		logger:  zap.NewNop(),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// ProcessFile compiles one candidate path. Failures are logged, never
// returned: a broken file stays stale until corrected and re-saved while
// every other file keeps compiling.
func (d *Dispatcher) ProcessFile(ctx context.Context, path string) {
	if err := d.compile(ctx, path); err != nil {
		d.logger.Error("compile failed",
			zap.String("file", path),
			zap.Error(err))
	}
}

func (d *Dispatcher) compile(ctx context.Context, path string) error {
	// Watch globs can be broader than the convention; re-validate here.
	if !d.service.IsDefinitionsFile(path) {
		return nil
	}

	unlock := d.lock(path)
	defer unlock()

	outPath := discovery.CompiledPath(path)
	if err := d.service.ProcessDefinitionsFile(ctx, path); err != nil {
		return err
	}
	if err := d.service.Precompile(ctx, path, d.locale, outPath, d.format); err != nil {
		return err
	}
	if d.keygen != nil && d.keyDB != nil {
		if err := d.keygen.WriteFile(path, d.keyDB.Keys(path)); err != nil {
			return err
		}
	}

	d.logger.Info("compiled",
		zap.String("file", path),
		zap.String("artifact", outPath),
		zap.String("locale", d.locale),
		zap.String("format", d.format))
	return nil
}

// lock serializes work per path without blocking unrelated files.
func (d *Dispatcher) lock(path string) func() {
	d.mu.Lock()
	m, ok := d.locks[path]
	if !ok {
		m = &sync.Mutex{}
		d.locks[path] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
