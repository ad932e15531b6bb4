// Package ui - Terminal user interface
// Rich CLI output with score bars, tables, and colors.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Colors for terminal output
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Printf writes formatted text
func (w *Writer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes text followed by a newline. text is never interpreted as a format.
func (w *Writer) Println(text string) {
	fmt.Fprintln(w.out, text)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println(w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Green, "✓ ")+msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Yellow, "⚠ ")+msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Red, "✗ ")+msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Blue, "ℹ ")+msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println(w.color(Dim, "  "+msg))
}

// ScoreBar renders a score in [0,100] as a fixed-width bar
func (w *Writer) ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if score < 0 || score != score {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * float64(width))

	c := Dim
	switch {
	case score > 70:
		c = Red
	case score > 50:
		c = Yellow
	case score > 0:
		c = Green
	}
	return w.color(c, strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println(t.w.color(Bold, t.line(t.headers)))

	sep := ""
	for i, w := range t.widths {
		if i > 0 {
			sep += "─┼─"
		}
		sep += strings.Repeat("─", w)
	}
	t.w.Println(sep)

	for _, row := range t.rows {
		t.w.Println(t.line(row))
	}
}

// line pads every cell to its column width
func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		fmt.Fprintf(&b, "%-*s", t.widths[i], cell)
	}
	return b.String()
}

// DiagnosisSummary renders the principal diagnosis
type DiagnosisSummary struct {
	w         *Writer
	Label     string
	Score     string
	Value     float64
	Rules     int
	Strategy  string
	Failed    bool
	ErrorText string
}

// NewDiagnosisSummary creates a diagnosis summary
func (w *Writer) NewDiagnosisSummary() *DiagnosisSummary {
	return &DiagnosisSummary{w: w}
}

// Render prints the diagnosis summary
func (s *DiagnosisSummary) Render() {
	s.w.Header("Network Diagnosis")

	if s.Failed {
		s.w.Error("%s", s.ErrorText)
		return
	}

	s.w.Println(s.w.color(Bold, "╭─────────────────────────────────────────────╮"))
	s.w.Println(s.w.color(Bold, "│")+s.w.color(Cyan, fmt.Sprintf("  Diagnosis: %-32s", s.Label))+s.w.color(Bold, "│"))
	s.w.Println(s.w.color(Bold, "│")+s.w.color(Dim, fmt.Sprintf("  Certainty: %-32s", s.Score+"/100"))+s.w.color(Bold, "│"))
	s.w.Println(s.w.color(Bold, "╰─────────────────────────────────────────────╯"))
	s.w.Println("")

	icon, c := "●", Red
	if s.Value <= 70 {
		icon, c = "◐", Yellow
	}
	if s.Value <= 50 {
		icon, c = "○", Green
	}
	s.w.Println(s.w.color(c, fmt.Sprintf("%s %d rules activated", icon, s.Rules)))
	if s.Strategy != "" {
		s.w.Println(s.w.color(Dim, "  Defuzzifier: "+s.Strategy))
	}
}
