package strategy

import (
	"testing"

	"github.com/kamilpajak/tsmend/pkg/models"
	"github.com/stretchr/testify/assert"
)

func listenerDiag(line int) models.Diagnostic {
	return models.Diagnostic{
		File:    "a.tsx",
		Line:    line,
		Column:  5,
		Code:    "TS2345",
		Message: "Argument of type '(e: KeyboardEvent) => void' is not assignable to parameter of type 'EventListener'.",
	}
}

func TestCastListeners_CastsFlaggedHandler(t *testing.T) {
	content := `window.addEventListener('keydown', handleKey);
`
	out, fixes := CastListeners{}.Apply(content, []models.Diagnostic{listenerDiag(1)})

	assert.Equal(t, 1, fixes)
	assert.Contains(t, out, "window.addEventListener('keydown', handleKey as EventListener);")
}

func TestCastListeners_HandlesRemoveAndOptionsArg(t *testing.T) {
	content := `el.removeEventListener('scroll', onScroll, { passive: true });
`
	out, fixes := CastListeners{}.Apply(content, []models.Diagnostic{listenerDiag(1)})

	assert.Equal(t, 1, fixes)
	assert.Contains(t, out, "el.removeEventListener('scroll', onScroll as EventListener, { passive: true });")
}

func TestCastListeners_OnlyTouchesFlaggedLines(t *testing.T) {
	content := `window.addEventListener('keydown', handleKey);
window.addEventListener('resize', handleResize);
`
	out, fixes := CastListeners{}.Apply(content, []models.Diagnostic{listenerDiag(2)})

	assert.Equal(t, 1, fixes)
	assert.Contains(t, out, "addEventListener('keydown', handleKey);")
	assert.Contains(t, out, "handleResize as EventListener")
}

func TestCastListeners_SkipsAlreadyCastLines(t *testing.T) {
	content := `window.addEventListener('keydown', handleKey as EventListener);
`
	out, fixes := CastListeners{}.Apply(content, []models.Diagnostic{listenerDiag(1)})

	assert.Equal(t, 0, fixes)
	assert.Equal(t, content, out)
}

func TestCastListeners_LeavesArrowFunctionsAlone(t *testing.T) {
	content := `window.addEventListener('keydown', (e) => handle(e));
`
	out, fixes := CastListeners{}.Apply(content, []models.Diagnostic{listenerDiag(1)})

	assert.Equal(t, 0, fixes)
	assert.Equal(t, content, out)
}
