// Package pipeline drives the incremental compilation loop: an initial
// discovery pass over every pre-existing definition file, followed by a
// continuous watch that feeds the same dispatcher. One file failing never
// interrupts the rest.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"intlpipe/pkg/discovery"
	"intlpipe/pkg/watcher"
)

// Options configure a Runner.
type Options struct {
	// Roots are the directories to compile and watch.
	Roots []string
	// DenyDirs overrides the default deny-list. Nil keeps the defaults.
	DenyDirs []string
	// Watch keeps the runner alive after the initial scan, reacting to
	// filesystem changes. Disable it to perform only the initial pass.
	Watch bool
	// Logger receives pipeline diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns the options the watch entrypoint starts from:
// watching enabled, default deny-list.
func DefaultOptions(roots ...string) Options {
	return Options{Roots: roots, Watch: true}
}

func (o Options) discoveryOptions() discovery.Options {
	return discovery.Options{Roots: o.Roots, DenyDirs: o.DenyDirs}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Runner owns one scan-then-watch cycle over a dispatcher.
type Runner struct {
	opts       Options
	dispatcher *Dispatcher
}

// NewRunner pairs options with a dispatcher.
func NewRunner(dispatcher *Dispatcher, opts Options) *Runner {
	return &Runner{opts: opts, dispatcher: dispatcher}
}

// Run attaches the watch first (so nothing changed during the scan is
// missed), performs the full initial pass, then consumes watch events until
// ctx is cancelled. With watching disabled it returns once the initial pass
// completes. Structural discovery failures propagate; per-file compile
// failures never do.
func (r *Runner) Run(ctx context.Context) error {
	log := r.opts.logger()
	dopts := r.opts.discoveryOptions()

	var events <-chan watcher.Event
	if r.opts.Watch {
		ch, err := watcher.Watch(ctx, dopts, watcher.WithLogger(log))
		if err != nil {
			return err
		}
		events = ch
	}

	scanned := 0
	err := discovery.Scan(ctx, dopts, func(path string) {
		scanned++
		r.dispatcher.ProcessFile(ctx, path)
	})
	if err != nil {
		return err
	}
	log.Info("initial scan complete",
		zap.Strings("roots", r.opts.Roots),
		zap.Int("files", scanned))

	if events == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug("change detected",
				zap.Stringer("kind", ev.Kind),
				zap.String("file", ev.Path))
			r.dispatcher.ProcessFile(ctx, ev.Path)
		}
	}
}

// Rescan performs one additional full pass with the runner's options. It is
// the reconcile hook for schedulers that want to catch events a watch may
// have missed.
func (r *Runner) Rescan(ctx context.Context) error {
	return discovery.Scan(ctx, r.opts.discoveryOptions(), func(path string) {
		r.dispatcher.ProcessFile(ctx, path)
	})
}
