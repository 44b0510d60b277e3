package codegen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"intlpipe/pkg/codegen"
)

func TestGenerate_RendersExportedConstants(t *testing.T) {
	g := codegen.NewGenerator("messages")

	out, err := g.Generate("menus.messages.js", []string{"custom.pager.title", "CUSTOM_STATUS", "42nd_street"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	src := string(out)

	for _, want := range []string{
		"package messages",
		"// Code generated from menus.messages.js; DO NOT EDIT.",
		`CustomPagerTitle = "custom.pager.title"`,
		`CUSTOMSTATUS = "CUSTOM_STATUS"`,
		`Key42ndStreet = "42nd_street"`,
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, src)
		}
	}
}

func TestGenerate_DefaultPackageName(t *testing.T) {
	g := codegen.NewGenerator("")
	out, err := g.Generate("m.messages.js", []string{"a"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "package messages") {
		t.Fatalf("expected default package name, got:\n%s", out)
	}
}

func TestWriteFile_SkipsEmptyKeySets(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "empty.messages.js")

	g := codegen.NewGenerator("messages")
	if err := g.WriteFile(source, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(codegen.KeysPath(source)); !os.IsNotExist(err) {
		t.Fatalf("expected no file for an empty key set, stat err = %v", err)
	}
}

func TestKeysPath(t *testing.T) {
	got := codegen.KeysPath("app/menus.messages.js")
	if got != "app/menus.messages.keys.go" {
		t.Fatalf("unexpected keys path %q", got)
	}
}
