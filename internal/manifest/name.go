package manifest

import (
	"fmt"
	"slices"
	"strings"
)

// maxNameLength is the longest package name the registry accepts.
const maxNameLength = 64

// ValidateProjectName checks that name can be used as the package name of a
// generated project: lowercase ASCII letters, digits, '-' and '_', starting
// with a letter.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	if len(name) > maxNameLength {
		return fmt.Errorf("invalid project name %q: longer than %d characters", name, maxNameLength)
	}

	for _, r := range name {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' && r != '_' {
			return fmt.Errorf("invalid project name %q: contains invalid character %q", name, r)
		}
	}

	if name[0] < 'a' || name[0] > 'z' {
		return fmt.Errorf("invalid project name %q: must start with a lowercase letter", name)
	}

	if isReservedWord(CrateName(name)) {
		return fmt.Errorf("invalid project name %q: cannot use reserved word", name)
	}

	return nil
}

// CrateName converts a project name to the identifier used in source code.
func CrateName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// reservedWords are keywords and crate names that cannot be package names.
var reservedWords = []string{
	"abstract", "alloc", "as", "async", "await", "become", "box", "break",
	"const", "continue", "core", "crate", "do", "dyn", "else", "enum",
	"extern", "false", "final", "fn", "for", "if", "impl", "in",
	"let", "loop", "macro", "match", "mod", "move", "mut", "override",
	"priv", "proc_macro", "pub", "ref", "return", "self", "static", "std",
	"struct", "super", "test", "trait", "true", "try", "type", "typeof",
	"unsafe", "unsized", "use", "virtual", "where", "while", "yield",
}

func isReservedWord(name string) bool {
	return slices.Contains(reservedWords, name)
}
