package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedLogger(buf *bytes.Buffer, verbose bool) *Logger {
	l := New(buf, verbose)
	l.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return l
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, false)

	l.Info("checking %d files", 3)
	l.Success("converged")
	l.Warning("rolled back")
	l.Error("git unavailable")

	out := buf.String()
	assert.Contains(t, out, "[09:30:00] INFO checking 3 files")
	assert.Contains(t, out, "[09:30:00]  OK  converged")
	assert.Contains(t, out, "[09:30:00] WARN rolled back")
	assert.Contains(t, out, "[09:30:00] FAIL git unavailable")
}

func TestLogger_VerboseGated(t *testing.T) {
	var quiet, loud bytes.Buffer

	fixedLogger(&quiet, false).Verbose("raw output")
	fixedLogger(&loud, true).Verbose("raw output")

	assert.Empty(t, quiet.String())
	assert.Contains(t, loud.String(), "raw output")
}

func TestLogger_SpinnerFallsBackOffTTY(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, false)

	stop := l.Spinner("running type checker")
	stop()

	assert.Contains(t, buf.String(), "running type checker")
}
