package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
	"github.com/shuttle-hq/shuttle-cli/internal/project"
)

// Generator creates projects from templates.
type Generator struct {
	// Fetchers maps each fetchable origin to its fetcher.
	Fetchers map[locator.Origin]Fetcher

	// Timeout bounds the fetch. Zero means no limit.
	Timeout time.Duration

	// WorkDir is where scratch directories are created. Empty means the
	// system temp directory.
	WorkDir string
}

// NewGenerator returns a generator that clones git sources with git and
// reads local sources in place.
func NewGenerator(git GitFetcher, timeout time.Duration) *Generator {
	return &Generator{
		Fetchers: map[locator.Origin]Fetcher{
			locator.LocalPath:    LocalFetcher{},
			locator.GitShorthand: git,
			locator.GitURL:       git,
		},
		Timeout: timeout,
	}
}

// Generate fetches the request's template and renders it into the request's
// destination. On failure nothing generated is left behind: a destination
// created by this call is removed, otherwise only the files written by this
// call are.
func (g *Generator) Generate(ctx context.Context, req *project.InitRequest) (*Result, error) {
	if req == nil {
		return nil, errors.New("generate: nil request")
	}
	log := output.ProjectLogger(req.ProjectName)

	existed, err := checkDestination(req.Destination, req.Force)
	if err != nil {
		return nil, err
	}

	src := req.Template.Fetchable()
	fetcher, ok := g.Fetchers[src.Origin]
	if !ok {
		return nil, fmt.Errorf("%w: no fetcher for %s sources", ErrSourceUnavailable, src.Origin)
	}

	work, err := os.MkdirTemp(g.WorkDir, "shuttle-init-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(work)

	log.Debug("fetching template", "source", req.Template.String(), "remote", src.Remote(), "subfolder", src.Subfolder)

	var root string
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var ferr error
		root, ferr = fetcher.Fetch(ctx, src, work)
		return ferr
	}, output.WithTitle("Fetching template "+req.Template.String()), output.WithTimeout(g.Timeout))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, src, err)
	}

	files, err := NewRenderer(TemplateData{
		ProjectName: req.ProjectName,
		CrateName:   manifest.CrateName(req.ProjectName),
	}).RenderTree(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s: template contains no files", ErrSourceUnavailable, src)
	}

	updated, err := setManifestName(files, req.ProjectName)
	if err != nil {
		return nil, err
	}
	if !updated {
		log.Warn("template has no package manifest to name", "file", manifest.FileName)
	}

	written, fresh, err := writeFiles(req.Destination, files)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		cleanup(req.Destination, existed, fresh)
		return nil, err
	}

	log.Debug("project generated", "files", len(written), "destination", req.Destination)

	return &Result{
		Files:           written,
		Destination:     req.Destination,
		Source:          req.Template,
		ManifestUpdated: updated,
	}, nil
}

// checkDestination enforces the conflict policy and reports whether the
// destination already existed.
func checkDestination(dir string, force bool) (bool, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking destination: %w", err)
	}
	if !info.IsDir() {
		return true, fmt.Errorf("%w: %s is a file", ErrDestinationConflict, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return true, fmt.Errorf("reading destination: %w", err)
	}
	if len(entries) > 0 && !force {
		return true, fmt.Errorf("%w: %s contains %d entries", ErrDestinationConflict, dir, len(entries))
	}
	return true, nil
}

// setManifestName writes name into the root manifest, if there is one.
func setManifestName(files []TemplateFile, name string) (bool, error) {
	for i, f := range files {
		if f.TargetPath != manifest.FileName {
			continue
		}
		content, ok, err := manifest.SetPackageName(f.Content, name)
		if err != nil {
			return false, fmt.Errorf("naming package: %w", err)
		}
		files[i].Content = content
		return ok, nil
	}
	return false, nil
}

// writeFiles writes files under dest. It returns every written path and the
// subset that did not exist before.
func writeFiles(dest string, files []TemplateFile) (written, fresh []string, err error) {
	written = make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(dest, filepath.FromSlash(f.TargetPath))

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fresh, fmt.Errorf("creating directory for %s: %w", f.TargetPath, err)
		}
		_, statErr := os.Lstat(target)
		isNew := os.IsNotExist(statErr)

		mode := f.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, f.Content, mode); err != nil {
			return written, fresh, fmt.Errorf("writing %s: %w", f.TargetPath, err)
		}

		output.Debug("created file", "path", f.TargetPath)
		written = append(written, f.TargetPath)
		if isNew {
			fresh = append(fresh, f.TargetPath)
		}
	}
	return written, fresh, nil
}

// cleanup removes a partially generated project. Files that existed before
// generation are kept.
func cleanup(dest string, existed bool, fresh []string) {
	if !existed {
		if err := os.RemoveAll(dest); err != nil {
			output.Warn("removing partial project", "dir", dest, "err", err)
		}
		return
	}
	for _, f := range fresh {
		_ = os.Remove(filepath.Join(dest, filepath.FromSlash(f)))
	}
}
