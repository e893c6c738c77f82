// Package report writes sweep findings to an append-only report file and
// mirrors output to the console. In verbose mode every appended line is
// mirrored; in quiet mode the console only sees the final summary.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const separator = "========================================"

// timestampFormat matches the header and footer timestamps in reports.
const timestampFormat = "2006-01-02 15:04:05"

// Sink accumulates scan output. It is owned by a single run and is not safe
// for concurrent use, which matches the strictly sequential scan model.
type Sink struct {
	file    *os.File
	console io.Writer
	path    string
	verbose bool

	sectionColor *color.Color
	now          func() time.Time
}

// Open truncates the report file at path and returns a sink mirroring to
// console. Colored section headers are used when console is a terminal.
func Open(path string, console io.Writer, verbose bool) (*Sink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	sectionColor := color.New(color.FgCyan, color.Bold)
	if !consoleIsTerminal(console) {
		sectionColor.DisableColor()
	}

	return &Sink{
		file:         file,
		console:      console,
		path:         path,
		verbose:      verbose,
		sectionColor: sectionColor,
		now:          time.Now,
	}, nil
}

// consoleIsTerminal reports whether w is an interactive terminal.
func consoleIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Path returns the report file path.
func (s *Sink) Path() string {
	return s.path
}

// Close closes the underlying report file.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Header writes the report preamble: search root, ruleset path, start
// timestamp and a separator.
func (s *Sink) Header(root, rulesetPath string) {
	s.Logf("Starting search from: %s", root)
	s.Logf("Config: %s", rulesetPath)
	s.Logf("Started: %s", s.now().Format(timestampFormat))
	s.Logf("%s", separator)
}

// Footer writes the closing separator and completion timestamp.
func (s *Sink) Footer() {
	s.Logf("")
	s.Logf("%s", separator)
	s.Logf("Completed: %s", s.now().Format(timestampFormat))
}

// Section writes the section header, unconditionally to the file and, when
// verbose, colored to the console.
func (s *Sink) Section(name string) {
	header := fmt.Sprintf("\n=== %s ===", name)
	s.appendFile(header)
	if s.verbose {
		s.sectionColor.Fprintln(s.console, strings.TrimPrefix(header, "\n"))
	}
}

// Logf appends a line to the report and mirrors it to the console when the
// sink is verbose.
func (s *Sink) Logf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	s.appendFile(line)
	if s.verbose {
		fmt.Fprintln(s.console, line)
	}
}

// Verbosef appends a line only when the sink is verbose. Used for metadata
// that quiet runs omit entirely.
func (s *Sink) Verbosef(format string, args ...interface{}) {
	if !s.verbose {
		return
	}
	s.Logf(format, args...)
}

// Noticef prints to the console only, and only when verbose. Used for
// run bookkeeping that does not belong in the report body.
func (s *Sink) Noticef(format string, args ...interface{}) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.console, format+"\n", args...)
}

// Summary prints to the console regardless of verbosity, without touching
// the report file. Used for the final "saved to" line.
func (s *Sink) Summary(format string, args ...interface{}) {
	fmt.Fprintf(s.console, format+"\n", args...)
}

func (s *Sink) appendFile(line string) {
	if s.file == nil {
		return
	}
	// Report write errors never abort a scan in progress
	fmt.Fprintln(s.file, line)
}
