package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleDiagnostic(t *testing.T) {
	raw := "src/hooks/useDebounce.ts(4,7): error TS6133: '_foo' is declared but never used.\n"

	diags := Parse(raw)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "src/hooks/useDebounce.ts", d.File)
	assert.Equal(t, 4, d.Line)
	assert.Equal(t, 7, d.Column)
	assert.Equal(t, "TS6133", d.Code)
	assert.Equal(t, "'_foo' is declared but never used.", d.Message)
	assert.Contains(t, d.Raw, "TS6133")
}

func TestParse_IgnoresBuildNoise(t *testing.T) {
	raw := `> tsc --noEmit --pretty false
npm warn config production Use --omit=dev instead.
src/App.tsx(10,1): error TS1005: ';' expected.
    at processTicksAndRejections (node:internal/process/task_queues:95:5)
Found 1 error.
`
	diags := Parse(raw)
	require.Len(t, diags, 1)
	assert.Equal(t, "TS1005", diags[0].Code)
	assert.Equal(t, "src/App.tsx", diags[0].File)
}

func TestParse_ColonFormat(t *testing.T) {
	raw := "src/pages/Watch.tsx:33:12 - error TS2304: Cannot find name 'useState'.\n"

	diags := Parse(raw)
	require.Len(t, diags, 1)
	assert.Equal(t, "src/pages/Watch.tsx", diags[0].File)
	assert.Equal(t, 33, diags[0].Line)
	assert.Equal(t, 12, diags[0].Column)
	assert.Equal(t, "TS2304", diags[0].Code)
}

func TestParse_CRLF(t *testing.T) {
	raw := "src/a.ts(1,2): error TS2307: Cannot find module './b'.\r\nsrc/c.ts(3,4): error TS2322: Type 'string' is not assignable to type 'number'.\r\n"

	diags := Parse(raw)
	require.Len(t, diags, 2)
	assert.Equal(t, "TS2307", diags[0].Code)
	assert.Equal(t, "Cannot find module './b'.", diags[0].Message)
	assert.Equal(t, "TS2322", diags[1].Code)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("All files compiled successfully.\n"))
}

func TestParse_RejectsZeroPositions(t *testing.T) {
	// Positions are 1-based; a zero means the line is not a real diagnostic.
	raw := "src/a.ts(0,0): error TS1005: ';' expected.\n"
	assert.Empty(t, Parse(raw))
}
