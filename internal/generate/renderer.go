package generate

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

// Entries dropped from every template tree.
var skipped = map[string]bool{
	".git":                true,
	"cargo-generate.toml": true,
}

// Renderer renders template trees with data substitution.
type Renderer struct {
	data     TemplateData
	replacer *strings.Replacer
}

// NewRenderer creates a renderer for the given data.
func NewRenderer(data TemplateData) *Renderer {
	return &Renderer{
		data: data,
		replacer: strings.NewReplacer(
			"{{project-name}}", data.ProjectName,
			"{{ project-name }}", data.ProjectName,
			"{{crate_name}}", data.CrateName,
			"{{ crate_name }}", data.CrateName,
		),
	}
}

// RenderFile renders a .tmpl file with text/template.
func (r *Renderer) RenderFile(content []byte) ([]byte, error) {
	tmpl, err := template.New("file").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

// Substitute replaces the project placeholders in a plain text file.
// Binary content is returned unchanged.
func (r *Renderer) Substitute(content []byte) []byte {
	if isBinary(content) {
		return content
	}
	return []byte(r.replacer.Replace(string(content)))
}

// RenderTree renders every file under root. Files ending in .tmpl go through
// text/template and lose the suffix; other files get placeholder
// substitution.
func (r *Renderer) RenderTree(root string) ([]TemplateFile, error) {
	var files []TemplateFile
	fsys := os.DirFS(root)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}

		if skipped[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		target := path
		if strings.HasSuffix(path, ".tmpl") {
			content, err = r.RenderFile(content)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", path, err)
			}
			target = strings.TrimSuffix(path, ".tmpl")
		} else {
			content = r.Substitute(content)
		}

		files = append(files, TemplateFile{
			TargetPath: target,
			Content:    content,
			Mode:       info.Mode().Perm(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking template %s: %w", root, err)
	}

	return files, nil
}

// isBinary uses the same heuristic as git: a NUL byte in the first 8000 bytes.
func isBinary(content []byte) bool {
	n := len(content)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}
