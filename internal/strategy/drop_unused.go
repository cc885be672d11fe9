package strategy

import (
	"regexp"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

var (
	unusedSymbolPattern  = regexp.MustCompile(`'([^']+)' is declared but (?:never used|its value is never read)`)
	namedListPattern     = regexp.MustCompile(`\{([^}]*)\}`)
	defaultImportPattern = regexp.MustCompile(`^import\s+([A-Za-z_$][\w$]*)\s+from\s+['"][^'"]+['"];?\s*$`)
)

// DropUnused strips symbols the checker reports as unused from import
// statements. When a named list empties, the statement (or its braces, when a
// default import remains) goes with it. Whether the symbol is still needed in
// other files is out of scope; the rollback net catches overreach.
type DropUnused struct{}

func (DropUnused) Name() string { return "drop-unused-imports" }

func (DropUnused) Categories() []string {
	return []string{models.CategoryUnusedImports}
}

func (DropUnused) Apply(content string, diags []models.Diagnostic) (string, int) {
	unused := make(map[string]bool)
	for _, d := range diags {
		if m := unusedSymbolPattern.FindStringSubmatch(d.Message); m != nil {
			unused[m[1]] = true
		}
	}
	if len(unused) == 0 {
		return content, 0
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	fixes := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			out = append(out, line)
			continue
		}

		// Default-only import of an unused symbol drops wholesale.
		if m := defaultImportPattern.FindStringSubmatch(trimmed); m != nil && unused[m[1]] {
			fixes++
			continue
		}

		newLine, removed := stripFromNamedList(line, unused)
		fixes += removed
		if newLine != "" {
			out = append(out, newLine)
		}
	}

	if fixes == 0 {
		return content, 0
	}
	return strings.Join(out, "\n"), fixes
}

// stripFromNamedList removes unused symbols from a `{ ... }` import list.
// It returns the rewritten line ("" when the whole statement should go) and
// how many symbols were removed.
func stripFromNamedList(line string, unused map[string]bool) (string, int) {
	m := namedListPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return line, 0
	}

	listStart, listEnd := m[2], m[3]
	symbols := splitSymbols(line[listStart:listEnd])
	kept := make([]string, 0, len(symbols))
	removed := 0

	for _, sym := range symbols {
		if unused[importedName(sym)] {
			removed++
			continue
		}
		kept = append(kept, sym)
	}
	if removed == 0 {
		return line, 0
	}

	if len(kept) > 0 {
		return line[:listStart] + " " + strings.Join(kept, ", ") + " " + line[listEnd:], removed
	}

	// Empty list: keep a default import if one precedes the braces,
	// otherwise the whole statement is dead.
	before := line[:m[0]]
	comma := strings.LastIndex(before, ",")
	defaultName := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(before), "import")), ",")
	if comma >= 0 && defaultName != "" {
		return strings.TrimRight(before[:comma], " ") + line[m[1]:], removed
	}
	return "", removed
}

// importedName resolves `Original as Alias` to the local binding, which is
// what the checker reports as unused.
func importedName(symbol string) string {
	if idx := strings.Index(symbol, " as "); idx >= 0 {
		return strings.TrimSpace(symbol[idx+4:])
	}
	return strings.TrimSpace(symbol)
}
