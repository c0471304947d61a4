// Package catalog holds the built-in registry of official project templates.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
)

// NoneName is the key of the no-framework entry.
const NoneName = "none"

// Entry is one catalogued template.
type Entry struct {
	// Name is the key accepted by --template.
	Name string

	// DisplayName is shown in the interactive framework list.
	DisplayName string

	// Description explains what the template contains.
	Description string

	// Source is the catalogued locator of the template.
	Source locator.Source

	// Expect describes what a project generated from this entry contains.
	Expect Expectation
}

// IsNone reports whether e is the no-framework entry.
func (e Entry) IsNone() bool {
	return e.Name == NoneName
}

// Expectation lists what a generated project must contain.
type Expectation struct {
	// Dependencies are crates the manifest must declare.
	Dependencies []string

	// Scaffold maps slash-separated file paths to their exact content.
	Scaffold map[string]string
}

// Catalog is an ordered, read-only set of entries. It is safe for concurrent
// use.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// New builds a catalog from entries in declaration order. Later entries with
// a duplicate name are ignored.
func New(entries ...Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(e.Name)
		if _, dup := c.byName[key]; dup {
			continue
		}
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Default returns the official catalog. It is built once per process.
var Default = sync.OnceValue(func() *Catalog {
	return New(officialEntries()...)
})

// Entries returns a copy of all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns all entry names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by exact name, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// LookupPrefix returns, in declaration order, the entries whose display name
// or name starts with partial, ignoring case. An empty partial matches
// everything.
func (c *Catalog) LookupPrefix(partial string) []Entry {
	p := strings.ToLower(strings.TrimSpace(partial))
	var out []Entry
	for _, e := range c.entries {
		if strings.HasPrefix(strings.ToLower(e.DisplayName), p) || strings.HasPrefix(strings.ToLower(e.Name), p) {
			out = append(out, e)
		}
	}
	return out
}

// Match resolves interactive input. An exact name or display name wins;
// otherwise a unique prefix match wins. When no single entry is selected the
// candidates are returned, possibly empty.
func (c *Catalog) Match(input string) (Entry, []Entry, bool) {
	if e, ok := c.Lookup(input); ok {
		return e, nil, true
	}
	in := strings.TrimSpace(input)
	for _, e := range c.entries {
		if strings.EqualFold(e.DisplayName, in) {
			return e, nil, true
		}
	}
	candidates := c.LookupPrefix(in)
	if in != "" && len(candidates) == 1 {
		return candidates[0], nil, true
	}
	return Entry{}, candidates, false
}

// FrameworkDependencies returns the framework crates of every entry except
// the one named exclude, sorted.
func (c *Catalog) FrameworkDependencies(exclude string) []string {
	seen := make(map[string]bool)
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, exclude) {
			continue
		}
		for _, dep := range e.Expect.Dependencies {
			if dep != manifest.RuntimeDependency {
				seen[dep] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for dep := range seen {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}
