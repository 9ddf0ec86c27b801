package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper collects Python source files for checking.
type FileHelper struct{}

// NewFileHelper creates a new FileHelper.
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectPythonFiles gathers Python files from the given paths,
// recursing into directories. Exclude patterns use gitignore syntax and
// apply to paths relative to each walked root. The returned list is
// sorted so downstream output is reproducible.
func (h *FileHelper) CollectPythonFiles(paths []string, excludePatterns []string) ([]string, error) {
	matcher := ignore.CompileIgnoreLines(excludePatterns...)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.IsPythonFile(path) && !matcher.MatchesPath(path) {
				files = append(files, path)
			}
			continue
		}

		root := path
		err = filepath.WalkDir(root, func(walkPath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, walkPath)
			if relErr != nil {
				rel = walkPath
			}

			if entry.IsDir() {
				// Prune excluded directories before descending
				if walkPath != root && matcher.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if h.IsPythonFile(walkPath) && !matcher.MatchesPath(rel) {
				files = append(files, walkPath)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsPythonFile reports whether the path looks like a Python source file.
func (h *FileHelper) IsPythonFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".py" || ext == ".pyi"
}
