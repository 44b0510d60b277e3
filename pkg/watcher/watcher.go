// Package watcher turns filesystem activity under the discovery roots into a
// bounded event stream. It attaches without synthesizing events for files
// that already exist, so consumers only ever see genuine create/modify
// activity occurring after attachment.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"intlpipe/pkg/discovery"
)

// Kind classifies a watch event.
type Kind int

const (
	// Created reports a definition file that appeared after attachment.
	Created Kind = iota
	// Modified reports a definition file whose content changed.
	Modified
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one qualifying change: exactly one path per event.
type Event struct {
	Kind Kind
	Path string
}

const defaultBuffer = 64

// Option customises the watcher.
type Option func(*config)

type config struct {
	logger *zap.Logger
	buffer int
}

// WithLogger routes watcher diagnostics through the given logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBuffer overrides the event channel capacity.
func WithBuffer(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.buffer = n
		}
	}
}

// Watch attaches a recursive watch over the discovery roots and returns the
// event channel. The channel closes when ctx is cancelled; the watch has no
// other termination. Directory trees created after attachment are added to
// the watch, and definition files inside them surface as Created events.
func Watch(ctx context.Context, opts discovery.Options, options ...Option) (<-chan Event, error) {
	cfg := &config{logger: zap.NewNop(), buffer: defaultBuffer}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	for _, root := range opts.Roots {
		if err := addTree(fsw, opts, root, nil); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	events := make(chan Event, cfg.buffer)
	go run(ctx, fsw, opts, cfg, events)
	return events, nil
}

func run(ctx context.Context, fsw *fsnotify.Watcher, opts discovery.Options, cfg *config, events chan<- Event) {
	defer close(events)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			handle(ctx, fsw, opts, cfg, ev, events)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			cfg.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func handle(ctx context.Context, fsw *fsnotify.Watcher, opts discovery.Options, cfg *config, ev fsnotify.Event, events chan<- Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if opts.Denied(ev.Name) {
		return
	}

	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// A tree moved or created under a root: watch it and surface
			// any definition files it brought along.
			found := make([]string, 0, 4)
			if err := addTree(fsw, opts, ev.Name, &found); err != nil {
				cfg.logger.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
			}
			for _, path := range found {
				emit(ctx, events, Event{Kind: Created, Path: path})
			}
			return
		}
	}

	if !discovery.IsDefinitionFile(ev.Name) {
		return
	}

	kind := Modified
	if ev.Op&fsnotify.Create != 0 {
		kind = Created
	}
	emit(ctx, events, Event{Kind: kind, Path: ev.Name})
}

func emit(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case <-ctx.Done():
	case events <- ev:
	}
}

// addTree registers watches for every non-denied directory under root. When
// found is non-nil it also collects definition files encountered along the
// way.
func addTree(fsw *fsnotify.Watcher, opts discovery.Options, root string, found *[]string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("watcher: walk %s: %w", root, walkErr)
		}
		if entry.IsDir() {
			if path != root && opts.Denied(path) {
				return filepath.SkipDir
			}
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("watcher: add %s: %w", path, err)
			}
			return nil
		}
		if found != nil && discovery.IsDefinitionFile(path) {
			*found = append(*found, path)
		}
		return nil
	})
}
