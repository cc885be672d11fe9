package strategy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// Executor applies a strategy to every file in a category's diagnostic set.
// Paths in diagnostics are relative to Dir unless absolute.
type Executor struct {
	Dir    string
	DryRun bool
	Backup bool
}

// Run applies s across the category's files and returns the number of fixes.
// A read or write failure aborts the pass; the caller treats that like a
// regression and rolls back.
func (e *Executor) Run(s Strategy, cat models.Category) (int, error) {
	byFile := make(map[string][]models.Diagnostic)
	for _, d := range cat.Members {
		byFile[d.File] = append(byFile[d.File], d)
	}

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	total := 0
	for _, file := range files {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.Dir, file)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("read %s: %w", file, err)
		}

		content := string(data)
		rewritten, fixes := s.Apply(content, byFile[file])
		if fixes == 0 || rewritten == content {
			continue
		}
		total += fixes

		if e.DryRun {
			continue
		}

		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}

		if e.Backup {
			if err := os.WriteFile(path+".bak", data, mode); err != nil {
				return total, fmt.Errorf("backup %s: %w", file, err)
			}
		}
		if err := os.WriteFile(path, []byte(rewritten), mode); err != nil {
			return total, fmt.Errorf("write %s: %w", file, err)
		}
	}
	return total, nil
}
