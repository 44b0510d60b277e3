package compiler_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"intlpipe/internal/template"
	"intlpipe/pkg/compiler"
)

type stubEmitter struct {
	name string
}

func (e stubEmitter) Name() string { return e.name }

func (e stubEmitter) Emit(string, map[string][]template.Node) ([]byte, error) {
	return []byte(e.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := compiler.NewRegistry()
	if err := r.Register(stubEmitter{name: "custom"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	emitter, err := r.Get("custom")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if emitter.Name() != "custom" {
		t.Fatalf("unexpected emitter %q", emitter.Name())
	}
	if !r.Has("custom") {
		t.Fatal("expected Has to report the registered format")
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := compiler.NewRegistry()
	if err := r.Register(stubEmitter{name: "custom"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(stubEmitter{name: "custom"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	r := compiler.NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(stubEmitter{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, r.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := compiler.NewRegistry()
	if _, err := r.Get("ghost"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
