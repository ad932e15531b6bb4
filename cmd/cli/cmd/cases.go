package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"netdiag/core/cases"
	"netdiag/core/output"
	"netdiag/internal/config"
)

var (
	casesFormat    string
	casesCheck     bool
	casesOverrides engineOverrides
)

// casesCmd runs the built-in cases
var casesCmd = &cobra.Command{
	Use:   "cases [id...]",
	Short: "Run the built-in diagnosis cases",
	Long: `Run the built-in cases and print their diagnoses.

With --check the command fails when a case does not produce its expected
diagnosis.

Examples:
  netdiag cases
  netdiag cases isp dns --format markdown
  netdiag cases --check --rules my-rules.hcl`,
	RunE: runCases,
}

func init() {
	casesCmd.Flags().StringVarP(&casesFormat, "format", "f", "cli", "output format (cli, json, markdown)")
	casesCmd.Flags().BoolVar(&casesCheck, "check", false, "fail when a case does not match its expected diagnosis")
	casesOverrides.register(casesCmd)
}

func runCases(cmd *cobra.Command, args []string) error {
	selected, err := selectCases(args)
	if err != nil {
		return err
	}

	eng, err := buildEngine(casesOverrides.apply(cmd, config.Get().Engine))
	if err != nil {
		return err
	}
	f, err := formatter(cmd, casesFormat)
	if err != nil {
		return err
	}

	describeEngine(cmd, eng)

	reports := make([]*output.Report, 0, len(selected))
	var mismatches []string
	for _, c := range selected {
		res := eng.Diagnose(c.Symptoms)
		reports = append(reports, newReport(eng, c.Name, c.Symptoms, res))
		if c.Expected != "" && res.Diagnosis != c.Expected {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s", c.ID, c.Expected, res.Diagnosis))
		}
	}

	if err := f.RenderAll(cmd.OutOrStdout(), reports); err != nil {
		return err
	}

	if casesCheck && len(mismatches) > 0 {
		w := newWriter(cmd.ErrOrStderr())
		for _, m := range mismatches {
			w.Warning("%s", m)
		}
		return fmt.Errorf("%d of %d cases did not match", len(mismatches), len(selected))
	}
	return nil
}

func selectCases(ids []string) ([]cases.Case, error) {
	if len(ids) == 0 {
		return cases.Builtin(), nil
	}
	out := make([]cases.Case, 0, len(ids))
	for _, id := range ids {
		c, ok := cases.Find(id)
		if !ok {
			return nil, fmt.Errorf("unknown case %q", id)
		}
		out = append(out, c)
	}
	return out, nil
}
