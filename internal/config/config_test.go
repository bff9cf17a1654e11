package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prove.toml")
	if err := os.WriteFile(path, []byte(`[package]
name = "demo"
version = "1.2.3"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "demo" || cfg.Package.Version != "1.2.3" {
		t.Fatalf("unexpected package: %+v", cfg.Package)
	}
	if cfg.Build.Target != "native" {
		t.Fatalf("expected default build.target, got %q", cfg.Build.Target)
	}
	if cfg.Test.PropertyRounds != 1000 {
		t.Fatalf("expected default test.property_rounds, got %d", cfg.Test.PropertyRounds)
	}
}

func TestLoadFullySpecified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prove.toml")
	if err := os.WriteFile(path, []byte(`
[package]
name = "widgets"
version = "0.3.0"
authors = ["a", "b"]
license = "MIT"

[build]
target = "wasm"
optimize = true

[test]
property_rounds = 250
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Build.Target != "wasm" || !cfg.Build.Optimize {
		t.Fatalf("unexpected build: %+v", cfg.Build)
	}
	if cfg.Test.PropertyRounds != 250 {
		t.Fatalf("unexpected test rounds: %d", cfg.Test.PropertyRounds)
	}
	if len(cfg.Package.Authors) != 2 {
		t.Fatalf("unexpected authors: %v", cfg.Package.Authors)
	}
}

func TestFindWalksUpParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "prove.toml")
	if err := os.WriteFile(manifest, []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found != manifest {
		t.Fatalf("expected %s, got %s", manifest, found)
	}
}

func TestFindNotFound(t *testing.T) {
	root := t.TempDir()
	if _, err := Find(root); err == nil {
		t.Fatal("expected error when no prove.toml exists")
	}
}
