package discovery

import "strings"

const (
	// DefinitionSuffix marks message-definition source files.
	DefinitionSuffix = ".messages.js"
	// CompiledSuffix marks compiled artifacts, written next to their
	// source.
	CompiledSuffix = ".compiled.messages.jsona"
)

// DefaultDenyDirs lists directory names skipped during discovery and
// watching: dependency caches, build output, native-build output, and
// generic runtime caches.
func DefaultDenyDirs() []string {
	return []string{
		"node_modules",
		".git",
		"vendor",
		"dist",
		"build",
		"out",
		"target",
		".cache",
		"__pycache__",
	}
}

// IsDefinitionFile reports whether path follows the definition-file naming
// convention. Compiled artifacts never qualify, which keeps the pipeline from
// feeding on its own output.
func IsDefinitionFile(path string) bool {
	return strings.HasSuffix(path, DefinitionSuffix) && !strings.HasSuffix(path, CompiledSuffix)
}

// CompiledPath derives the compiled-artifact path for a definition file. It
// is a pure function of the input path: the definition suffix is replaced by
// the compiled suffix in the same directory.
func CompiledPath(path string) string {
	return strings.TrimSuffix(path, DefinitionSuffix) + CompiledSuffix
}
