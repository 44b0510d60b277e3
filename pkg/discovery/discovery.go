// Package discovery expands root directories into definition-file paths
// under deny-list rules. Results stream to the caller as they are found so a
// large tree never has to be buffered, and a scan completes a full pass over
// all pre-existing files before returning.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options configure a scan and the watcher that shares its rules.
type Options struct {
	// Roots are the directories to expand. At least one is required and
	// each must exist.
	Roots []string
	// DenyDirs are directory names excluded from traversal. Nil means
	// DefaultDenyDirs.
	DenyDirs []string
}

// Error reports a structural discovery failure, such as a missing root. It
// indicates misconfiguration rather than a bad source file, so it propagates
// to the caller instead of being swallowed.
type Error struct {
	Root string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("discovery: root %s: %v", e.Root, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (o Options) denyDirs() map[string]struct{} {
	names := o.DenyDirs
	if names == nil {
		names = DefaultDenyDirs()
	}
	deny := make(map[string]struct{}, len(names))
	for _, name := range names {
		deny[name] = struct{}{}
	}
	return deny
}

// Denied reports whether any path element below a configured root is a
// denied directory name. Elements above the roots never count: a workspace
// that happens to live under a directory called "build" is not denied.
func (o Options) Denied(path string) bool {
	deny := o.denyDirs()
	rel := filepath.Clean(path)
	for _, root := range o.Roots {
		cleanRoot := filepath.Clean(root)
		if rel == cleanRoot {
			return false
		}
		if strings.HasPrefix(rel, cleanRoot+string(filepath.Separator)) {
			rel = rel[len(cleanRoot)+1:]
			break
		}
	}
	for _, element := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, ok := deny[element]; ok {
			return true
		}
	}
	return false
}

// Scan walks every root depth-first, invoking fn for each definition file as
// it is found. It returns only after the full pass over pre-existing files,
// so every definition file has been offered downstream before completion is
// observable. A missing or unreadable root yields an *Error.
func Scan(ctx context.Context, opts Options, fn func(path string)) error {
	if len(opts.Roots) == 0 {
		return &Error{Root: "", Err: fmt.Errorf("no roots configured")}
	}
	deny := opts.denyDirs()

	for _, root := range opts.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return &Error{Root: root, Err: err}
		}
		if !info.IsDir() {
			return &Error{Root: root, Err: fmt.Errorf("not a directory")}
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.IsDir() {
				if _, denied := deny[entry.Name()]; denied && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if IsDefinitionFile(path) {
				fn(path)
			}
			return nil
		})
		if err != nil {
			return &Error{Root: root, Err: err}
		}
	}
	return nil
}
