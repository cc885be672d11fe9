// Package classify buckets compiler diagnostics into repair categories and
// orders the categories by how much a fix would unblock the rest of the
// checker output.
package classify

import (
	"sort"
	"strings"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// Syntax-level codes block everything downstream, so they classify first.
var syntaxCodes = map[string]bool{
	"TS1003": true, // identifier expected
	"TS1005": true, // ';' or ',' expected
	"TS1109": true, // expression expected
	"TS1128": true, // declaration or statement expected
	"TS1131": true, // property or signature expected
	"TS1434": true, // unexpected keyword or identifier
}

var unusedCodes = map[string]bool{
	"TS6133": true, // declared but never used
	"TS6192": true, // all imports unused
	"TS6196": true, // declared but never used (type)
}

var missingCodes = map[string]bool{
	"TS2304": true, // cannot find name
	"TS2305": true, // module has no exported member
	"TS2307": true, // cannot find module
	"TS2552": true, // cannot find name, did you mean
}

var typeCodes = map[string]bool{
	"TS2322": true, // type not assignable
	"TS2339": true, // property does not exist
	"TS2345": true, // argument not assignable
	"TS2739": true, // missing properties
	"TS2740": true, // missing properties
	"TS2769": true, // no overload matches
}

// eventTypeNames are DOM event types whose mention in a type error marks the
// diagnostic as a listener-signature mismatch rather than a generic one.
var eventTypeNames = []string{
	"EventListener",
	"MouseEvent",
	"KeyboardEvent",
	"PointerEvent",
	"TouchEvent",
	"WheelEvent",
	"FocusEvent",
	"InputEvent",
	"DragEvent",
}

var baseWeights = map[string]int{
	models.CategorySyntaxImports:     100,
	models.CategoryMissingImports:    80,
	models.CategoryDuplicateImports:  70,
	models.CategoryUnusedImports:     60,
	models.CategoryEventHandlerTypes: 50,
	models.CategoryTypeCompatibility: 40,
}

const (
	otherBaseWeight = 10
	fileBonusCap    = 10
)

// Key assigns a diagnostic to exactly one category. Predicates are ordered;
// the first match wins, so classification is a total function over
// code+message.
func Key(d models.Diagnostic) string {
	switch {
	case syntaxCodes[d.Code]:
		return models.CategorySyntaxImports
	case strings.Contains(d.Message, "Duplicate identifier"):
		return models.CategoryDuplicateImports
	case unusedCodes[d.Code]:
		return models.CategoryUnusedImports
	case missingCodes[d.Code]:
		return models.CategoryMissingImports
	case mentionsEventType(d.Message):
		return models.CategoryEventHandlerTypes
	case typeCodes[d.Code]:
		return models.CategoryTypeCompatibility
	default:
		return "other-" + d.Code
	}
}

func mentionsEventType(msg string) bool {
	for _, name := range eventTypeNames {
		if strings.Contains(msg, name) {
			return true
		}
	}
	return false
}

// Classify groups diagnostics into categories ordered by priority descending,
// key ascending for ties. The result is deterministic for a fixed input.
func Classify(diags []models.Diagnostic) []models.Category {
	buckets := make(map[string][]models.Diagnostic)
	for _, d := range diags {
		key := Key(d)
		buckets[key] = append(buckets[key], d)
	}

	categories := make([]models.Category, 0, len(buckets))
	for key, members := range buckets {
		cat := models.Category{Key: key, Members: members}
		cat.Priority = priority(key, &cat)
		categories = append(categories, cat)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Priority != categories[j].Priority {
			return categories[i].Priority > categories[j].Priority
		}
		return categories[i].Key < categories[j].Key
	})
	return categories
}

// CountFor returns how many of diags fall into the given category key.
func CountFor(diags []models.Diagnostic, key string) int {
	n := 0
	for _, d := range diags {
		if Key(d) == key {
			n++
		}
	}
	return n
}

// priority is a fixed base weight per key plus a capped bonus for how many
// distinct files the category touches.
func priority(key string, cat *models.Category) int {
	base, ok := baseWeights[key]
	if !ok {
		base = otherBaseWeight
	}
	bonus := len(cat.Files())
	if bonus > fileBonusCap {
		bonus = fileBonusCap
	}
	return base + bonus
}
