// Package output provides output formatting interfaces.
// This package produces human and machine-readable diagnosis reports.
package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"netdiag/core/determinism"
	"netdiag/core/types"
	"netdiag/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Places is the number of decimal places scores are rounded to in reports
const Places = 2

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for one report
	Render(w io.Writer, report *Report) error

	// RenderAll produces output for several reports
	RenderAll(w io.Writer, reports []*Report) error
}

// Options controls what the formatters include
type Options struct {
	// ShowRules includes the activated rules
	ShowRules bool

	// NoColor disables ANSI colors in CLI output
	NoColor bool
}

// Report is one diagnosis ready for rendering
type Report struct {
	// Name is an optional title, such as a case name
	Name string `json:"name,omitempty"`

	// Symptoms are the readings that were diagnosed
	Symptoms types.Symptoms `json:"symptoms"`

	// Result is the diagnosis
	Result types.DiagnosisResult `json:"result"`

	// Strategy is the defuzzification strategy that produced the scores
	Strategy string `json:"strategy,omitempty"`

	// Order lists the output variables in declaration order
	Order []string `json:"-"`

	// Labels maps output variables to display labels
	Labels map[string]string `json:"-"`
}

// Round rounds a score for display
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(Places)
}

// RoundFloat rounds a score for machine output
func RoundFloat(v float64) float64 {
	return Round(v).InexactFloat64()
}

// ScoreLine is one output variable and its rounded score
type ScoreLine struct {
	Variable string
	Label    string
	Score    decimal.Decimal
}

// Scores lists the report scores in declaration order, falling back to name
// order when the report carries no order.
func (r *Report) Scores() []ScoreLine {
	order := r.Order
	if len(order) == 0 {
		order = determinism.SortedKeys(r.Result.Scores)
	}

	lines := make([]ScoreLine, 0, len(order))
	for _, name := range order {
		v, ok := r.Result.Scores[name]
		if !ok {
			continue
		}
		lines = append(lines, ScoreLine{Variable: name, Label: r.label(name), Score: Round(v)})
	}
	return lines
}

func (r *Report) label(name string) string {
	if l, ok := r.Labels[name]; ok && l != "" {
		return l
	}
	return name
}

// Registry manages formatters by format
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding the cli, json and markdown formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(NewCLIFormatter(opts))
	r.Register(NewJSONFormatter())
	r.Register(NewMarkdownFormatter(opts))
	return r
}

// Register adds a formatter, replacing any formatter of the same format
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.Input(fmt.Sprintf("unknown output format %q", format)).WithContext("format", string(format))
	}
	return f, nil
}

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatCLI, FormatJSON, FormatMarkdown}
}

// Valid reports whether f names a supported format
func Valid(f string) bool {
	for _, known := range Formats() {
		if string(known) == f {
			return true
		}
	}
	return false
}
