// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes files, keyed by slash-separated relative path, under root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, root, name, content)
	}
}

// ReadFile returns the content of path, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// CargoManifest returns a hello-world manifest declaring deps plus the
// runtime crate.
func CargoManifest(deps ...string) string {
	var b strings.Builder
	b.WriteString("[package]\nname = \"hello-world\"\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n")
	for _, dep := range deps {
		b.WriteString(dep)
		b.WriteString(" = \"0.47.0\"\n")
	}
	b.WriteString("shuttle-runtime = \"0.47.0\"\ntokio = \"1.26.0\"\n")
	return b.String()
}

// ExamplesRepo lays out a checkout of the official examples repository with
// every catalog entry at its subfolder, and returns its root.
func ExamplesRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range catalog.Default().Entries() {
		sub := e.Source.Fetchable().Subfolder

		var deps []string
		for _, dep := range e.Expect.Dependencies {
			if dep != "shuttle-runtime" {
				deps = append(deps, e.Name, dep)
			}
		}
		WriteFile(t, root, sub+"/Cargo.toml", CargoManifest(deps...))

		main := "// " + e.Name + "\n"
		if scaffold, ok := e.Expect.Scaffold["src/main.rs"]; ok {
			main = scaffold
		}
		WriteFile(t, root, sub+"/src/main.rs", main)
	}
	return root
}
