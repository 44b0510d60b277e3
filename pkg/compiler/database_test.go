package compiler_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"intlpipe/internal/template"
	"intlpipe/pkg/compiler"
)

func def(key, text string) compiler.Definition {
	return compiler.Definition{Key: key, Raw: text, Nodes: []template.Node{template.LiteralNode(text)}}
}

func TestDatabase_ReplaceFileSwapsContributions(t *testing.T) {
	db := compiler.NewDatabase()

	if err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("one", "1"), def("two", "2")}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("three", "3")}); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	if diff := cmp.Diff([]string{"three"}, db.Keys("a.messages.js")); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	// Keys dropped by the re-process must be claimable by another file.
	if err := db.ReplaceFile("b.messages.js", []compiler.Definition{def("one", "1")}); err != nil {
		t.Fatalf("expected released key to be claimable: %v", err)
	}
}

func TestDatabase_DuplicateKeyWithinFileRejected(t *testing.T) {
	db := compiler.NewDatabase()
	err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("dup", "x"), def("dup", "y")})
	if err == nil || !strings.Contains(err.Error(), "duplicate message key") {
		t.Fatalf("expected duplicate-key error, got %v", err)
	}
}

func TestDatabase_CrossFileKeyCollisionRejected(t *testing.T) {
	db := compiler.NewDatabase()
	if err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("shared", "x")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := db.ReplaceFile("b.messages.js", []compiler.Definition{def("shared", "y")})
	if err == nil || !strings.Contains(err.Error(), "already defined in a.messages.js") {
		t.Fatalf("expected cross-file collision error, got %v", err)
	}
	// The failing file must not have partially registered.
	if _, ok := db.Messages("b.messages.js"); ok {
		t.Fatal("expected the rejected file to contribute nothing")
	}
}

func TestDatabase_RemoveFileReleasesKeys(t *testing.T) {
	db := compiler.NewDatabase()
	if err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("k", "x")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	db.RemoveFile("a.messages.js")

	if got := db.Paths(); len(got) != 0 {
		t.Fatalf("expected no paths after removal, got %v", got)
	}
	if err := db.ReplaceFile("b.messages.js", []compiler.Definition{def("k", "y")}); err != nil {
		t.Fatalf("expected key released after removal: %v", err)
	}
}

func TestDatabase_KeysSorted(t *testing.T) {
	db := compiler.NewDatabase()
	if err := db.ReplaceFile("a.messages.js", []compiler.Definition{def("zeta", "z"), def("alpha", "a"), def("mid", "m")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, db.Keys("a.messages.js")); diff != "" {
		t.Fatalf("keys not sorted (-want +got):\n%s", diff)
	}
}
