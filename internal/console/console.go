// Package console renders timestamped, leveled progress lines and the
// spinner shown while the type checker runs.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	infoTag    = color.New(color.FgCyan).SprintFunc()
	successTag = color.New(color.FgGreen).SprintFunc()
	warnTag    = color.New(color.FgYellow).SprintFunc()
	errorTag   = color.New(color.FgRed).SprintFunc()
	dim        = color.New(color.FgHiBlack).SprintFunc()
)

// Logger writes leveled progress lines. It is safe to share across the
// orchestrator's collaborators; all writes are line-atomic.
type Logger struct {
	w       io.Writer
	verbose bool
	tty     bool
	now     func() time.Time
}

// New returns a Logger writing to w. Color and spinner support engage only
// when w is a terminal.
func New(w io.Writer, verbose bool) *Logger {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !tty {
		color.NoColor = true
	}
	return &Logger{w: w, verbose: verbose, tty: tty, now: time.Now}
}

func (l *Logger) line(tag, format string, args ...any) {
	ts := dim(l.now().Format("15:04:05"))
	fmt.Fprintf(l.w, "[%s] %s %s\n", ts, tag, fmt.Sprintf(format, args...))
}

// Info logs a neutral progress line.
func (l *Logger) Info(format string, args ...any) { l.line(infoTag("INFO"), format, args...) }

// Success logs a confirmed positive outcome.
func (l *Logger) Success(format string, args ...any) { l.line(successTag(" OK "), format, args...) }

// Warning logs a recovered or tolerated problem.
func (l *Logger) Warning(format string, args ...any) { l.line(warnTag("WARN"), format, args...) }

// Error logs a failure. It does not terminate anything by itself.
func (l *Logger) Error(format string, args ...any) { l.line(errorTag("FAIL"), format, args...) }

// Verbose logs only when verbose output was requested.
func (l *Logger) Verbose(format string, args ...any) {
	if l.verbose {
		l.line(dim(" .. "), format, args...)
	}
}

// Spinner shows msg with an animated spinner until the returned stop function
// runs. On non-terminals it degrades to a single info line.
func (l *Logger) Spinner(msg string) func() {
	if !l.tty {
		l.Info("%s", msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(l.w))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
