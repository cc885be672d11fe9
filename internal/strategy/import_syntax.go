package strategy

import (
	"regexp"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// Ordered pipeline of shape repairs applied to import lines. These target the
// residue left behind by mechanical edits: doubled punctuation and dangling
// commas inside the named list.
var importRepairs = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`,\s*,`), ","},
	{regexp.MustCompile(`\{\s*,`), "{"},
	{regexp.MustCompile(`,\s*\}`), " }"},
	{regexp.MustCompile(`;\s*;`), ";"},
}

// ImportSyntax repairs malformed punctuation in import declarations.
type ImportSyntax struct{}

func (ImportSyntax) Name() string { return "import-syntax" }

func (ImportSyntax) Categories() []string {
	return []string{models.CategorySyntaxImports}
}

func (ImportSyntax) Apply(content string, _ []models.Diagnostic) (string, int) {
	lines := strings.Split(content, "\n")
	fixes := 0

	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "import") {
			continue
		}
		repaired, n := repairImportLine(line)
		if n > 0 {
			lines[i] = repaired
			fixes += n
		}
	}

	if fixes == 0 {
		return content, 0
	}
	return strings.Join(lines, "\n"), fixes
}

func repairImportLine(line string) (string, int) {
	fixes := 0
	for _, repair := range importRepairs {
		for repair.pattern.MatchString(line) {
			line = repair.pattern.ReplaceAllString(line, repair.replace)
			fixes++
		}
	}
	return line, fixes
}
