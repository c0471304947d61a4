// Package manifest reads and edits the Cargo manifest of a generated project.
package manifest

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file at the root of every generated project.
const FileName = "Cargo.toml"

// RuntimeDependency is the crate every deployable project depends on.
const RuntimeDependency = "shuttle-runtime"

// Manifest is the subset of Cargo.toml the initializer cares about.
type Manifest struct {
	Package      *Package               `toml:"package"`
	Dependencies map[string]interface{} `toml:"dependencies"`
	Workspace    *Workspace             `toml:"workspace"`
}

// Package is the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members      []string               `toml:"members"`
	Dependencies map[string]interface{} `toml:"dependencies"`
}

// Parse decodes manifest content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &m, nil
}

// Name returns the package name, or "" for virtual manifests.
func (m *Manifest) Name() string {
	if m.Package == nil {
		return ""
	}
	return m.Package.Name
}

// HasDependency reports whether name is declared in [dependencies]
// or [workspace.dependencies].
func (m *Manifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	if m.Workspace != nil {
		if _, ok := m.Workspace.Dependencies[name]; ok {
			return true
		}
	}
	return false
}

// DependencyNames returns all declared dependency names, sorted.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	if m.Workspace != nil {
		for name := range m.Workspace.Dependencies {
			if _, dup := m.Dependencies[name]; !dup {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

var (
	tableHeader = regexp.MustCompile(`^\s*\[`)
	packageHdr  = regexp.MustCompile(`^\s*\[package\]\s*(#.*)?$`)
	nameKey     = regexp.MustCompile(`^(\s*)name\s*=.*$`)
)

// SetPackageName rewrites the name key of the [package] table, keeping the
// rest of the file byte-for-byte. Returns false when there is no [package]
// table (virtual workspace manifests).
func SetPackageName(data []byte, name string) ([]byte, bool, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, false, err
	}

	lines := bytes.SplitAfter(data, []byte("\n"))
	inPackage := false
	for i, line := range lines {
		trimmed := bytes.TrimRight(line, "\r\n")
		switch {
		case packageHdr.Match(trimmed):
			inPackage = true
			continue
		case tableHeader.Match(trimmed):
			if inPackage {
				// [package] without a name key: add one right after the header.
				return insertAfterHeader(lines, name), true, nil
			}
			continue
		}
		if inPackage && nameKey.Match(trimmed) {
			indent := nameKey.FindSubmatch(trimmed)[1]
			ending := line[len(trimmed):]
			lines[i] = append([]byte(fmt.Sprintf("%sname = %q", indent, name)), ending...)
			return bytes.Join(lines, nil), true, nil
		}
	}

	if inPackage {
		return insertAfterHeader(lines, name), true, nil
	}
	return data, false, nil
}

func insertAfterHeader(lines [][]byte, name string) []byte {
	out := make([][]byte, 0, len(lines)+1)
	for _, line := range lines {
		out = append(out, line)
		if packageHdr.Match(bytes.TrimRight(line, "\r\n")) {
			if !bytes.HasSuffix(line, []byte("\n")) {
				out[len(out)-1] = append(append([]byte{}, line...), '\n')
			}
			out = append(out, []byte(fmt.Sprintf("name = %q\n", name)))
		}
	}
	return bytes.Join(out, nil)
}
