package compiler

import (
	"fmt"
	"sort"
	"sync"

	"intlpipe/internal/template"
)

// Definition is one parsed message declaration: its key, the sanitized
// source text, and the compiled node sequence.
type Definition struct {
	Key   string
	Raw   string
	Nodes []template.Node
}

// sourceFile tracks the declarations one definitions file contributes.
type sourceFile struct {
	path        string
	definitions map[string]Definition
}

// Database is the shared message database, keyed by source path. Message
// keys are additionally indexed by their defining file so a key declared in
// two files surfaces as a compile error instead of silently last-writer-wins.
// Safe for concurrent use.
type Database struct {
	mu     sync.RWMutex
	files  map[string]*sourceFile
	owners map[string]string
}

// NewDatabase builds an empty database.
func NewDatabase() *Database {
	return &Database{
		files:  make(map[string]*sourceFile),
		owners: make(map[string]string),
	}
}

// ReplaceFile installs the full set of definitions for one source path,
// dropping whatever the path contributed before. Re-processing an unchanged
// file is a no-op in effect, which keeps recompilation idempotent.
func (db *Database) ReplaceFile(path string, defs []Definition) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	next := make(map[string]Definition, len(defs))
	for _, def := range defs {
		if _, dup := next[def.Key]; dup {
			return fmt.Errorf("compiler: %s: duplicate message key %q", path, def.Key)
		}
		if owner, taken := db.owners[def.Key]; taken && owner != path {
			return fmt.Errorf("compiler: %s: message key %q already defined in %s", path, def.Key, owner)
		}
		next[def.Key] = def
	}

	if prev, ok := db.files[path]; ok {
		for key := range prev.definitions {
			delete(db.owners, key)
		}
	}
	for key := range next {
		db.owners[key] = path
	}
	db.files[path] = &sourceFile{path: path, definitions: next}
	return nil
}

// RemoveFile drops a source path and every key it owned.
func (db *Database) RemoveFile(path string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	prev, ok := db.files[path]
	if !ok {
		return
	}
	for key := range prev.definitions {
		delete(db.owners, key)
	}
	delete(db.files, path)
}

// Messages returns the compiled node sequences a source path contributes.
func (db *Database) Messages(path string) (map[string][]template.Node, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	file, ok := db.files[path]
	if !ok {
		return nil, false
	}
	out := make(map[string][]template.Node, len(file.definitions))
	for key, def := range file.definitions {
		out[key] = def.Nodes
	}
	return out, true
}

// Keys returns the sorted message keys a source path contributes.
func (db *Database) Keys(path string) []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	file, ok := db.files[path]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(file.definitions))
	for key := range file.definitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Paths returns every known source path, sorted.
func (db *Database) Paths() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	paths := make([]string, 0, len(db.files))
	for path := range db.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
