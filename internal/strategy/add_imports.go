package strategy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

var missingNamePattern = regexp.MustCompile(`Cannot find name '([^']+)'`)

// knownModules maps commonly forgotten symbols to the module that exports
// them. Deliberately small: anything not listed stays a manual fix.
var knownModules = map[string]string{
	"useState":       "react",
	"useEffect":      "react",
	"useMemo":        "react",
	"useCallback":    "react",
	"useRef":         "react",
	"useContext":     "react",
	"useReducer":     "react",
	"useNavigate":    "react-router-dom",
	"useParams":      "react-router-dom",
	"useSearchParams": "react-router-dom",
	"Link":           "react-router-dom",
}

// AddImports inserts an import for unresolved names that appear in the
// known-module table.
type AddImports struct{}

func (AddImports) Name() string { return "add-missing-imports" }

func (AddImports) Categories() []string {
	return []string{models.CategoryMissingImports}
}

func (AddImports) Apply(content string, diags []models.Diagnostic) (string, int) {
	// module -> symbols to add, insertion-ordered.
	wanted := make(map[string][]string)
	var moduleOrder []string

	for _, d := range diags {
		m := missingNamePattern.FindStringSubmatch(d.Message)
		if m == nil {
			continue
		}
		symbol := m[1]
		module, known := knownModules[symbol]
		if !known || alreadyImports(content, symbol, module) {
			continue
		}
		if !containsSymbol(wanted[module], symbol) {
			if _, seen := wanted[module]; !seen {
				moduleOrder = append(moduleOrder, module)
			}
			wanted[module] = append(wanted[module], symbol)
		}
	}
	if len(wanted) == 0 {
		return content, 0
	}

	lines := strings.Split(content, "\n")
	fixes := 0

	for _, module := range moduleOrder {
		symbols := wanted[module]
		if merged := mergeIntoExisting(lines, module, symbols); merged > 0 {
			fixes += merged
			continue
		}
		stmt := fmt.Sprintf("import { %s } from '%s';", strings.Join(symbols, ", "), module)
		lines = insertAfterImports(lines, stmt)
		fixes += len(symbols)
	}

	return strings.Join(lines, "\n"), fixes
}

// alreadyImports reports whether the file already binds symbol from module.
func alreadyImports(content, symbol, module string) bool {
	for _, line := range strings.Split(content, "\n") {
		m := namedImportPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil || m[4] != module {
			continue
		}
		for _, s := range splitSymbols(m[2]) {
			if importedName(s) == symbol {
				return true
			}
		}
	}
	return false
}

// mergeIntoExisting extends an existing named import from module with the
// given symbols, returning how many were added.
func mergeIntoExisting(lines []string, module string, symbols []string) int {
	for i, line := range lines {
		m := namedImportPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil || m[1] != "" || m[4] != module {
			continue
		}
		existing := splitSymbols(m[2])
		added := 0
		for _, sym := range symbols {
			if !containsSymbol(existing, sym) {
				existing = append(existing, sym)
				added++
			}
		}
		if added > 0 {
			lines[i] = fmt.Sprintf("import { %s } from %s%s%s;", strings.Join(existing, ", "), m[3], module, m[3])
		}
		return added
	}
	return 0
}

// insertAfterImports places stmt after the last top-of-file import, or at the
// very top when the file has none.
func insertAfterImports(lines []string, stmt string) []string {
	last := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			last = i
		}
	}

	out := make([]string, 0, len(lines)+1)
	if last == -1 {
		out = append(out, stmt)
		out = append(out, lines...)
		return out
	}
	out = append(out, lines[:last+1]...)
	out = append(out, stmt)
	out = append(out, lines[last+1:]...)
	return out
}
