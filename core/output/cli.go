package output

import (
	"fmt"
	"io"

	"netdiag/core/ui"
)

// CLIFormatter renders reports for a terminal
type CLIFormatter struct {
	opts Options
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	res := report.Result

	summary := out.NewDiagnosisSummary()
	summary.Failed = res.Failed()
	summary.ErrorText = res.Error
	summary.Label = report.label(res.Diagnosis)
	summary.Score = Round(res.Score).StringFixed(Places)
	summary.Value = res.Score
	summary.Rules = len(res.ActivatedRules)
	summary.Strategy = report.Strategy
	if report.Name != "" {
		out.SubHeader(report.Name)
	}
	summary.Render()

	if !res.Failed() {
		out.Header("Scores")
		table := out.NewTable("Category", "Score", "")
		for _, line := range report.Scores() {
			table.AddRow(line.Label, line.Score.StringFixed(Places), out.ScoreBar(line.Score.InexactFloat64(), 20))
		}
		table.Render()
	}

	if f.opts.ShowRules && len(res.ActivatedRules) > 0 {
		out.Header("Activated Rules")
		for i, a := range res.ActivatedRules {
			out.Printf("%2d. %s (%s)\n", i+1, a.Rule, Round(a.Strength).StringFixed(Places))
		}
	}

	out.Header("Recommendations")
	for i, rec := range res.Recommendations {
		out.Printf("%2d. %s\n", i+1, rec)
	}
	out.Println("")
	return nil
}

// RenderAll implements Formatter
func (f *CLIFormatter) RenderAll(w io.Writer, reports []*Report) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	table := out.NewTable("Case", "Diagnosis", "Score", "Rules")
	for _, r := range reports {
		if r.Result.Failed() {
			table.AddRow(r.Name, "error", "-", "-")
			continue
		}
		table.AddRow(
			r.Name,
			r.label(r.Result.Diagnosis),
			Round(r.Result.Score).StringFixed(Places),
			fmt.Sprintf("%d", len(r.Result.ActivatedRules)),
		)
	}
	table.Render()
	return nil
}
