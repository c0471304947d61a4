package output

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ddddddO/gtree"
)

// RenderFileTree renders the created files of a project as a tree rooted at rootName.
// Paths are slash- or OS-separated, relative to the project root.
func RenderFileTree(rootName string, files []string) (string, error) {
	if len(files) == 0 {
		return "", nil
	}

	sorted := make([]string, len(files))
	for i, f := range files {
		sorted[i] = filepath.ToSlash(f)
	}
	sort.Strings(sorted)

	root := gtree.NewRoot(rootName + "/")
	dirs := map[string]*gtree.Node{"": root}

	for _, path := range sorted {
		parts := strings.Split(path, "/")
		parent := ""
		for i, part := range parts {
			key := strings.Join(parts[:i+1], "/")
			if i == len(parts)-1 {
				dirs[parent].Add(part)
				break
			}
			if _, ok := dirs[key]; !ok {
				dirs[key] = dirs[parent].Add(part + "/")
			}
			parent = key
		}
	}

	var sb strings.Builder
	if err := gtree.OutputFromRoot(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}
