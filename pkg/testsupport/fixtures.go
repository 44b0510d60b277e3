// Package testsupport carries fixture helpers shared by the package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"intlpipe/internal/template"
)

// WriteDefinitions writes a definitions file with the given content under
// dir and returns its path. Testing helpers fail fatally to keep contract
// tests concise.
func WriteDefinitions(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write definitions %s: %v", path, err)
	}
	return path
}

// Definitions wraps message entries in the defineMessages call the parser
// expects.
func Definitions(entries string) string {
	return "export default defineMessages({\n" + entries + "\n});\n"
}

// ReadArtifact decodes the compiled artifact at path.
func ReadArtifact(t *testing.T, path string) *template.Artifact {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact %s: %v", path, err)
	}
	artifact, err := template.DecodeArtifact(data)
	if err != nil {
		t.Fatalf("decode artifact %s: %v", path, err)
	}
	return artifact
}

// MessageKeys returns the artifact's message keys for diffing against an
// expected set.
func MessageKeys(artifact *template.Artifact) []string {
	keys := make([]string, 0, len(artifact.Messages))
	for key := range artifact.Messages {
		keys = append(keys, key)
	}
	return keys
}

// Diff fails the test when got differs from want, printing the cmp diff.
func Diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
