// Package codegen emits generated source files of message-key constants, one
// per definitions file, so application code can reference keys without
// string literals.
package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"intlpipe/pkg/discovery"
)

// KeysFileSuffix replaces the definition suffix on generated key files.
const KeysFileSuffix = ".messages.keys.go"

var keysTemplate = pongo2.Must(pongo2.FromString(`// Code generated from {{ source|safe }}; DO NOT EDIT.

package {{ pkg|safe }}

const (
{% for key in keys %}	{{ key.Ident|safe }} = "{{ key.Name|safe }}"
{% endfor %})
`))

type keyConst struct {
	Ident string
	Name  string
}

// Generator renders key-constants files for a fixed package name.
type Generator struct {
	pkg string
}

// NewGenerator builds a Generator. An empty package name defaults to
// "messages".
func NewGenerator(pkgName string) *Generator {
	pkg := strings.TrimSpace(pkgName)
	if pkg == "" {
		pkg = "messages"
	}
	return &Generator{pkg: pkg}
}

// Generate renders the key-constants source for one definitions file.
func (g *Generator) Generate(sourcePath string, keys []string) ([]byte, error) {
	consts := make([]keyConst, 0, len(keys))
	for _, key := range keys {
		consts = append(consts, keyConst{Ident: exportIdent(key), Name: key})
	}
	out, err := keysTemplate.Execute(pongo2.Context{
		"source": filepath.Base(sourcePath),
		"pkg":    g.pkg,
		"keys":   consts,
	})
	if err != nil {
		return nil, fmt.Errorf("codegen: render keys for %s: %w", sourcePath, err)
	}
	return []byte(out), nil
}

// WriteFile renders and writes the key-constants file next to its
// definitions file. Nothing is written for an empty key set.
func (g *Generator) WriteFile(sourcePath string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	data, err := g.Generate(sourcePath, keys)
	if err != nil {
		return err
	}
	outPath := KeysPath(sourcePath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("codegen: write %s: %w", outPath, err)
	}
	return nil
}

// KeysPath derives the generated-file path for a definitions file.
func KeysPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, discovery.DefinitionSuffix) + KeysFileSuffix
}

// exportIdent turns a message key into an exported Go identifier:
// "custom.pager.title" becomes "CustomPagerTitle".
func exportIdent(key string) string {
	var out strings.Builder
	upperNext := true
	for _, r := range key {
		switch {
		case r == '.' || r == '_' || r == '-' || r == '$':
			upperNext = true
		case upperNext:
			out.WriteRune(toUpper(r))
			upperNext = false
		default:
			out.WriteRune(r)
		}
	}
	ident := out.String()
	if ident == "" || (ident[0] >= '0' && ident[0] <= '9') {
		ident = "Key" + ident
	}
	return ident
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
