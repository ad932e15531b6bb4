package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders reports as markdown
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// Format implements Formatter
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder

	title := "Network diagnosis"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintf(&b, "## %s\n\n", title)

	res := report.Result
	if res.Failed() {
		fmt.Fprintf(&b, "**Error:** %s\n\n", res.Error)
		writeList(&b, res.Recommendations)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "**Diagnosis:** %s (%s/100)\n\n", report.label(res.Diagnosis), Round(res.Score).StringFixed(Places))

	b.WriteString("| Category | Score |\n|---|---:|\n")
	for _, line := range report.Scores() {
		fmt.Fprintf(&b, "| %s | %s |\n", line.Label, line.Score.StringFixed(Places))
	}
	b.WriteString("\n")

	if f.opts.ShowRules && len(res.ActivatedRules) > 0 {
		b.WriteString("### Activated rules\n\n")
		for _, a := range res.ActivatedRules {
			fmt.Fprintf(&b, "- %s (%s)\n", a.Rule, Round(a.Strength).StringFixed(Places))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Recommendations\n\n")
	writeList(&b, res.Recommendations)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderAll implements Formatter
func (f *MarkdownFormatter) RenderAll(w io.Writer, reports []*Report) error {
	var b strings.Builder
	b.WriteString("| Case | Diagnosis | Score | Rules |\n|---|---|---:|---:|\n")
	for _, r := range reports {
		name := r.Name
		if name == "" {
			name = "-"
		}
		if r.Result.Failed() {
			fmt.Fprintf(&b, "| %s | error | - | - |\n", name)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
			name, r.label(r.Result.Diagnosis), Round(r.Result.Score).StringFixed(Places), len(r.Result.ActivatedRules))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
