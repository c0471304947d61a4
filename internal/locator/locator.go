// Package locator turns template references given on the command line into
// structured template sources.
package locator

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
)

// Resolution errors. Both wrap errors.ErrValidation.
var (
	ErrEmptyLocator        = oerrors.Wrap(oerrors.ErrValidation, "empty template locator")
	ErrUnrecognizedLocator = oerrors.Wrap(oerrors.ErrValidation, "unrecognized template locator")
)

// Origin classifies where a template comes from.
type Origin int

const (
	// Unknown is the zero Origin; no resolved Source carries it.
	Unknown Origin = iota
	// LocalPath is a directory on the local filesystem.
	LocalPath
	// GitShorthand is an owner/repo reference on a known git host.
	GitShorthand
	// GitURL is a full repository URL.
	GitURL
	// CatalogName is an entry of the built-in template catalog.
	CatalogName
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case LocalPath:
		return "local path"
	case GitShorthand:
		return "git shorthand"
	case GitURL:
		return "git URL"
	case CatalogName:
		return "catalog"
	default:
		return "unknown"
	}
}

// DefaultHost is the git host assumed for bare owner/repo shorthands.
const DefaultHost = "github.com"

// shorthandHosts maps shorthand prefixes to git hosts.
var shorthandHosts = []struct {
	prefix string
	host   string
}{
	{"gh:", "github.com"},
	{"gl:", "gitlab.com"},
	{"bb:", "bitbucket.org"},
}

// Source identifies a template. Sources are values; they are never modified
// after resolution.
type Source struct {
	// Origin is the kind of reference.
	Origin Origin

	// Host is the git host of a GitShorthand source.
	Host string

	// Address is the path, owner/repo, URL, or catalog key.
	Address string

	// Subfolder is the path inside the template tree, exactly as supplied.
	Subfolder string

	upstream *Source
}

// Catalogued returns a CatalogName source for key whose templates live at
// upstream. The subfolder always comes from upstream.
func Catalogued(key string, upstream Source) Source {
	up := upstream
	return Source{
		Origin:    CatalogName,
		Host:      upstream.Host,
		Address:   key,
		Subfolder: upstream.Subfolder,
		upstream:  &up,
	}
}

// Fetchable returns the source that has to be fetched: the upstream of a
// catalogued source, the source itself otherwise.
func (s Source) Fetchable() Source {
	if s.Origin == CatalogName && s.upstream != nil {
		return *s.upstream
	}
	return s
}

// Remote returns the canonical location of the template tree: a clone URL
// for git sources, a cleaned path for local ones.
func (s Source) Remote() string {
	switch s.Origin {
	case LocalPath:
		return path.Clean(s.Address)
	case GitShorthand:
		host := s.Host
		if host == "" {
			host = DefaultHost
		}
		return "https://" + host + "/" + strings.TrimSuffix(s.Address, ".git")
	case GitURL:
		return canonicalURL(s.Address)
	case CatalogName:
		if s.upstream != nil {
			return s.upstream.Remote()
		}
	}
	return ""
}

// FetchTarget is the effective location a source points to. Sources written
// in different forms but naming the same tree have equal targets.
type FetchTarget struct {
	Remote    string
	Subfolder string
}

// Target returns the effective fetch target of s.
func (s Source) Target() FetchTarget {
	return FetchTarget{
		Remote:    s.Remote(),
		Subfolder: CleanSubfolder(s.Subfolder),
	}
}

// String renders the source the way a user would type it.
func (s Source) String() string {
	var ref string
	switch s.Origin {
	case GitShorthand:
		ref = s.Address
		for _, sh := range shorthandHosts {
			if sh.host == s.Host && s.Host != DefaultHost {
				ref = sh.prefix + s.Address
			}
		}
	default:
		ref = s.Address
	}
	if s.Subfolder != "" && s.Origin != CatalogName {
		return fmt.Sprintf("%s (subfolder %s)", ref, s.Subfolder)
	}
	return ref
}

// CleanSubfolder normalises a subfolder for comparison and joining. The
// result is "" for the tree root.
func CleanSubfolder(sub string) string {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return ""
	}
	cleaned := path.Clean(strings.ReplaceAll(sub, "\\", "/"))
	cleaned = strings.Trim(cleaned, "/")
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// Resolver classifies raw locators.
type Resolver struct {
	// Exists reports whether a local path exists. Nil means os.Stat.
	Exists func(path string) bool
}

// NewResolver returns a Resolver that checks the local filesystem.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve classifies raw and attaches subfolder verbatim. The first matching
// rule wins: an existing local path, a host shorthand prefix, an absolute
// URL, then a bare owner/repo.
func (r *Resolver) Resolve(raw, subfolder string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, ErrEmptyLocator
	}

	if r.exists(raw) {
		return Source{Origin: LocalPath, Address: raw, Subfolder: subfolder}, nil
	}

	for _, sh := range shorthandHosts {
		if rest, ok := strings.CutPrefix(raw, sh.prefix); ok {
			if !isOwnerRepo(rest) {
				return Source{}, fmt.Errorf("%w: %q: expected %sowner/repo", ErrUnrecognizedLocator, raw, sh.prefix)
			}
			return Source{Origin: GitShorthand, Host: sh.host, Address: rest, Subfolder: subfolder}, nil
		}
	}

	if isAbsoluteURL(raw) {
		return Source{Origin: GitURL, Address: raw, Subfolder: subfolder}, nil
	}

	if isOwnerRepo(raw) {
		return Source{Origin: GitShorthand, Host: DefaultHost, Address: raw, Subfolder: subfolder}, nil
	}

	return Source{}, fmt.Errorf("%w: %q", ErrUnrecognizedLocator, raw)
}

func (r *Resolver) exists(p string) bool {
	if r.Exists != nil {
		return r.Exists(p)
	}
	_, err := os.Stat(p)
	return err == nil
}

// isAbsoluteURL reports whether raw has a scheme and something after it.
// Single-letter schemes are Windows drive letters, not URLs.
func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || len(u.Scheme) < 2 {
		return false
	}
	return u.Host != "" || u.Opaque != "" || strings.Trim(u.Path, "/") != ""
}

// isOwnerRepo reports whether s has the exact shape owner/repo.
func isOwnerRepo(s string) bool {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(repo, "/") {
		return false
	}
	return isSegment(owner) && isSegment(repo)
}

func isSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

func canonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), ".git")
	u.RawPath = ""
	return u.String()
}
