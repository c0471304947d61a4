package generate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
)

// Fetcher makes the template tree of a source available on disk.
type Fetcher interface {
	// Fetch may use workDir for scratch files. It returns the directory
	// holding the template, with the source's subfolder applied.
	Fetch(ctx context.Context, src locator.Source, workDir string) (string, error)
}

// LocalFetcher reads templates from the local filesystem in place.
type LocalFetcher struct{}

// Fetch implements Fetcher.
func (LocalFetcher) Fetch(ctx context.Context, src locator.Source, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return subtree(src.Address, src.Subfolder)
}

// GitFetcher shallow-clones remote repositories with the git binary.
type GitFetcher struct {
	// Binary is the git executable. Empty means "git" from PATH.
	Binary string

	// UserAgent is sent on HTTP(S) clones. Empty keeps git's default.
	UserAgent string
}

// Fetch implements Fetcher.
func (g GitFetcher) Fetch(ctx context.Context, src locator.Source, workDir string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	remote := src.Remote()
	clone := filepath.Join(workDir, "repo")

	output.Debug("cloning template", "remote", remote, "dir", clone)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, g.cloneArgs(remote, clone)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git clone %s: %w", remote, err)
		}
		return "", fmt.Errorf("git clone %s: %s", remote, msg)
	}

	return subtree(clone, src.Subfolder)
}

func (g GitFetcher) cloneArgs(remote, dir string) []string {
	var args []string
	if g.UserAgent != "" {
		args = append(args, "-c", "http.userAgent="+g.UserAgent)
	}
	return append(args, "clone", "--depth", "1", "--quiet", remote, dir)
}

// subtree joins sub onto root and checks the result is a directory inside
// root.
func subtree(root, sub string) (string, error) {
	dir := root
	if cleaned := locator.CleanSubfolder(sub); cleaned != "" {
		if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			return "", fmt.Errorf("subfolder %q escapes the template root", sub)
		}
		dir = filepath.Join(root, filepath.FromSlash(cleaned))
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) && dir != root {
			return "", fmt.Errorf("subfolder %q not found", sub)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}
