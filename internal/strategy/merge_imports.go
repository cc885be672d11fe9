package strategy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// namedImportPattern matches a pure named-import statement, the only shape
// this strategy merges. Default and namespace imports are left alone.
var namedImportPattern = regexp.MustCompile(`^import\s+(type\s+)?\{([^}]*)\}\s+from\s+(['"])([^'"]+)['"];?\s*$`)

// MergeImports folds repeated named-import statements from the same module
// specifier into the first one, deduplicating symbols.
type MergeImports struct{}

func (MergeImports) Name() string { return "merge-imports" }

func (MergeImports) Categories() []string {
	return []string{models.CategoryDuplicateImports}
}

type importGroup struct {
	line    int
	isType  bool
	quote   string
	symbols []string
}

func (MergeImports) Apply(content string, _ []models.Diagnostic) (string, int) {
	lines := strings.Split(content, "\n")

	groups := make(map[string]*importGroup)
	drop := make(map[int]bool)
	fixes := 0

	for i, line := range lines {
		m := namedImportPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		isType := m[1] != ""
		quote := m[3]
		module := m[4]
		symbols := splitSymbols(m[2])

		key := module
		if isType {
			key = "type " + module
		}

		group, seen := groups[key]
		if !seen {
			groups[key] = &importGroup{line: i, isType: isType, quote: quote, symbols: symbols}
			continue
		}

		for _, sym := range symbols {
			if !containsSymbol(group.symbols, sym) {
				group.symbols = append(group.symbols, sym)
			}
		}
		drop[i] = true
		fixes++
	}

	if fixes == 0 {
		return content, 0
	}

	for _, group := range groups {
		prefix := "import "
		if group.isType {
			prefix = "import type "
		}
		lines[group.line] = fmt.Sprintf("%s{ %s } from %s%s%s;",
			prefix, strings.Join(group.symbols, ", "), group.quote, moduleOf(groups, group), group.quote)
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if drop[i] {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), fixes
}

func moduleOf(groups map[string]*importGroup, target *importGroup) string {
	for key, group := range groups {
		if group == target {
			return strings.TrimPrefix(key, "type ")
		}
	}
	return ""
}

func splitSymbols(list string) []string {
	parts := strings.Split(list, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

func containsSymbol(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
