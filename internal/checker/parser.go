package checker

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// tsc with --pretty false prints `src/a.ts(12,5): error TS6133: ...`.
// Some wrappers rewrite positions into the `src/a.ts:12:5 - error ...` form.
var (
	parenPattern = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): error (TS\d+): (.+)$`)
	colonPattern = regexp.MustCompile(`^(.+?):(\d+):(\d+) - error (TS\d+): (.+)$`)
)

// Parse scans raw checker output line by line and returns the diagnostics it
// recognizes. Build-tool noise and continuation lines are skipped; this is a
// best-effort linear scan, never an error.
func Parse(raw string) []models.Diagnostic {
	var diags []models.Diagnostic

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if d, ok := parseLine(line); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

func parseLine(line string) (models.Diagnostic, bool) {
	m := parenPattern.FindStringSubmatch(line)
	if m == nil {
		m = colonPattern.FindStringSubmatch(line)
	}
	if m == nil {
		return models.Diagnostic{}, false
	}

	lineNo, err := strconv.Atoi(m[2])
	if err != nil || lineNo < 1 {
		return models.Diagnostic{}, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil || col < 1 {
		return models.Diagnostic{}, false
	}

	return models.Diagnostic{
		File:    strings.TrimSpace(m[1]),
		Line:    lineNo,
		Column:  col,
		Code:    m[4],
		Message: strings.TrimSpace(m[5]),
		Raw:     line,
	}, true
}
