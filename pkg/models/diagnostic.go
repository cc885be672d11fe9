package models

import "sort"

// Diagnostic is a single compiler-reported issue. Instances are created by
// the checker parser and never mutated afterwards.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Raw     string `json:"-"`
}

// Category keys produced by the classifier. Every diagnostic that matches
// none of these falls into an "other-<code>" bucket.
const (
	CategorySyntaxImports     = "syntax-import-declaration"
	CategoryDuplicateImports  = "duplicate-imports"
	CategoryUnusedImports     = "unused-imports"
	CategoryMissingImports    = "missing-imports"
	CategoryTypeCompatibility = "type-compatibility"
	CategoryEventHandlerTypes = "event-handler-types"
)

// Category groups diagnostics that share a repair strategy.
type Category struct {
	Key      string       `json:"key"`
	Members  []Diagnostic `json:"members"`
	Priority int          `json:"priority"`
}

// Files returns the distinct files affected by this category, sorted.
func (c *Category) Files() []string {
	seen := make(map[string]bool, len(c.Members))
	files := make([]string, 0, len(c.Members))
	for _, d := range c.Members {
		if !seen[d.File] {
			seen[d.File] = true
			files = append(files, d.File)
		}
	}
	sort.Strings(files)
	return files
}
