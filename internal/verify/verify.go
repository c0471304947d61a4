// Package verify checks that a generated project matches what its template
// promises.
package verify

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
)

// ErrTemplateDefect marks a generated project that does not match its
// template. It points at a broken template rather than at user input, and
// wraps errors.ErrValidation.
var ErrTemplateDefect = oerrors.Wrap(oerrors.ErrValidation, "template defect")

// Kind sentinels. Both wrap ErrTemplateDefect.
var (
	ErrMissingFile     = fmt.Errorf("missing file: %w", ErrTemplateDefect)
	ErrContentMismatch = fmt.Errorf("content mismatch: %w", ErrTemplateDefect)
)

// Error describes one failed check.
type Error struct {
	// Kind is ErrMissingFile or ErrContentMismatch.
	Kind error

	// File is the project-relative path that failed.
	File string

	// Expected is the fragment or content that was expected.
	Expected string

	// Detail says what was found instead.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if errors.Is(e.Kind, ErrMissingFile) {
		fmt.Fprintf(&b, "%s is missing", e.File)
	} else {
		fmt.Fprintf(&b, "%s does not match the template", e.File)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Expected != "" && !strings.Contains(e.Expected, "\n") {
		fmt.Fprintf(&b, " (expected %s)", e.Expected)
	}
	return b.String()
}

// Unwrap returns the kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validate checks the project in dest. The manifest must exist and carry
// expectedName. For a catalog entry, the expected dependencies must be
// declared and scaffold files must match byte for byte; the none entry must
// not declare any framework of the default catalog. entry may be nil for
// templates outside the catalog.
func Validate(dest, expectedName string, entry *catalog.Entry) error {
	manifestPath := filepath.Join(dest, manifest.FileName)
	raw, err := os.ReadFile(manifestPath)
	if errors.Is(err, os.ErrNotExist) {
		return &Error{Kind: ErrMissingFile, File: manifest.FileName}
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", manifest.FileName, err)
	}

	m, err := manifest.Parse(raw)
	if err != nil {
		return &Error{Kind: ErrContentMismatch, File: manifest.FileName, Detail: err.Error()}
	}

	nameLine := fmt.Sprintf("name = %q", expectedName)
	if m.Name() != expectedName || !strings.Contains(string(raw), nameLine) {
		return &Error{
			Kind:     ErrContentMismatch,
			File:     manifest.FileName,
			Expected: nameLine,
			Detail:   fmt.Sprintf("package name is %q", m.Name()),
		}
	}

	if entry == nil {
		return nil
	}

	for _, dep := range entry.Expect.Dependencies {
		if !m.HasDependency(dep) {
			return &Error{
				Kind:     ErrContentMismatch,
				File:     manifest.FileName,
				Expected: dep + " = ",
				Detail:   fmt.Sprintf("dependency %s is not declared (declared: %s)", dep, declared(m)),
			}
		}
	}

	if entry.IsNone() {
		for _, dep := range catalog.Default().FrameworkDependencies(catalog.NoneName) {
			if m.HasDependency(dep) {
				return &Error{
					Kind:   ErrContentMismatch,
					File:   manifest.FileName,
					Detail: fmt.Sprintf("unexpected framework dependency %s", dep),
				}
			}
		}
	}

	for _, file := range slices.Sorted(maps.Keys(entry.Expect.Scaffold)) {
		if err := checkScaffold(dest, file, entry.Expect.Scaffold[file]); err != nil {
			return err
		}
	}
	return nil
}

// declared lists the manifest's dependencies for error details.
func declared(m *manifest.Manifest) string {
	names := m.DependencyNames()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func checkScaffold(dest, file, want string) error {
	got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(file)))
	if errors.Is(err, os.ErrNotExist) {
		return &Error{Kind: ErrMissingFile, File: file, Expected: want}
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	if string(got) != want {
		return &Error{
			Kind:     ErrContentMismatch,
			File:     file,
			Expected: want,
			Detail:   firstDifference(string(got), want),
		}
	}
	return nil
}

// firstDifference describes the first line where got and want differ.
func firstDifference(got, want string) string {
	gl := strings.Split(got, "\n")
	wl := strings.Split(want, "\n")
	for i := 0; i < len(gl) || i < len(wl); i++ {
		var g, w string
		if i < len(gl) {
			g = gl[i]
		}
		if i < len(wl) {
			w = wl[i]
		}
		if g != w {
			return fmt.Sprintf("line %d is %q, expected %q", i+1, g, w)
		}
	}
	return "content differs"
}
