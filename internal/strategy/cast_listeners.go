package strategy

import (
	"regexp"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// listenerCallPattern captures an identifier handler passed to a listener
// registration call. Inline arrow functions are left alone; casting those
// textually is not safe.
var listenerCallPattern = regexp.MustCompile(`((?:add|remove)EventListener\(\s*['"][\w-]+['"]\s*,\s*)([A-Za-z_$][\w$.]*)(\s*[,)])`)

// CastListeners appends an `as EventListener` cast to the handler argument of
// listener registrations on the lines the checker flagged.
type CastListeners struct{}

func (CastListeners) Name() string { return "cast-event-listeners" }

func (CastListeners) Categories() []string {
	return []string{models.CategoryEventHandlerTypes}
}

func (CastListeners) Apply(content string, diags []models.Diagnostic) (string, int) {
	flagged := make(map[int]bool, len(diags))
	for _, d := range diags {
		flagged[d.Line] = true
	}
	if len(flagged) == 0 {
		return content, 0
	}

	lines := strings.Split(content, "\n")
	fixes := 0

	for i, line := range lines {
		if !flagged[i+1] || strings.Contains(line, "as EventListener") {
			continue
		}
		replaced := listenerCallPattern.ReplaceAllString(line, "${1}${2} as EventListener${3}")
		if replaced != line {
			lines[i] = replaced
			fixes++
		}
	}

	if fixes == 0 {
		return content, 0
	}
	return strings.Join(lines, "\n"), fixes
}
