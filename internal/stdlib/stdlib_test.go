package stdlib

import (
	"testing"

	"github.com/proveland/prove/internal/types"
)

func TestLoadInputOutputSignatures(t *testing.T) {
	sigs, err := Load("InputOutput")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sigs) == 0 {
		t.Fatal("expected at least one signature")
	}

	var found bool
	for _, sig := range sigs {
		if sig.Verb == "outputs" && sig.Name == "console" {
			found = true
			if len(sig.Params) != 1 || !types.Compatible(sig.Params[0], types.StringT) {
				t.Fatalf("unexpected outputs console params: %+v", sig.Params)
			}
		}
	}
	if !found {
		t.Fatal("expected an outputs console signature")
	}
}

func TestLoadIsCaseInsensitiveAndCached(t *testing.T) {
	a, err := Load("io")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := Load("IO")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("expected identical signature counts for aliased casing, got %d vs %d", len(a), len(b))
	}
}

func TestLoadUnknownModuleReturnsEmpty(t *testing.T) {
	sigs, err := Load("NoSuchModule")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sigs) != 0 {
		t.Fatalf("expected no signatures for an unknown module, got %d", len(sigs))
	}
}

func TestIsModule(t *testing.T) {
	if !IsModule("Text") {
		t.Fatal("expected Text to be a known stdlib module")
	}
	if IsModule("Nonexistent") {
		t.Fatal("did not expect Nonexistent to be a known stdlib module")
	}
}

func TestBinaryCName(t *testing.T) {
	if got := BinaryCName("io", "outputs", "console"); got != "prove_println" {
		t.Fatalf("expected prove_println, got %q", got)
	}
	if got := BinaryCName("io", "outputs", "nope"); got != "" {
		t.Fatalf("expected empty string for unmapped entry, got %q", got)
	}
}

func TestBuildImportIndexFindsParseFunctions(t *testing.T) {
	idx := BuildImportIndex()
	suggestions, ok := idx["integer"]
	if !ok || len(suggestions) == 0 {
		t.Fatal("expected a suggestion for Parse.integer")
	}
	if suggestions[0].Module != "Parse" {
		t.Fatalf("expected Parse module suggestion, got %+v", suggestions[0])
	}
}
