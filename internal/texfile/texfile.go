// Package texfile discovers LaTeX sources on disk.
package texfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/latexfmt/internal/errors"
)

// Extensions lists the file extensions latexindent understands.
var Extensions = []string{".tex", ".sty", ".cls", ".dtx", ".ltx"}

// IsSource reports whether path has a LaTeX source extension.
func IsSource(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Find returns the LaTeX sources under root in lexical order.
// Hidden directories are skipped; root itself may be a file.
func Find(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", root)
	}
	if !info.IsDir() {
		if !IsSource(root) {
			return nil, errors.Newf("%s is not a LaTeX source file", root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && IsSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", root)
	}

	return files, nil
}

// FindAll runs Find over every path and removes duplicates, keeping the
// first occurrence.
func FindAll(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		found, err := Find(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			key := filepath.Clean(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Head returns up to n lines from the start of path, used for previews.
func Head(path string, n int) string {
	f, err := os.Open(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	buf := make([]byte, 8<<10)
	k, _ := f.Read(buf)
	lines := strings.SplitAfter(string(buf[:k]), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "")
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
