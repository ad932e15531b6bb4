package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"netdiag/core/output"
	"netdiag/internal/config"
)

var (
	membershipSamples  int
	membershipVariable string
	membershipJSON     bool
)

// membershipCmd prints sampled membership functions
var membershipCmd = &cobra.Command{
	Use:   "membership",
	Short: "Print the sampled membership functions of every variable",
	Long: `Print the membership functions of every linguistic variable, sampled at
evenly spaced points across the variable range.

Examples:
  netdiag membership
  netdiag membership --variable wifi_signal --samples 20
  netdiag membership --json --samples 100 > curves.json`,
	Args: cobra.NoArgs,
	RunE: runMembership,
}

func init() {
	membershipCmd.Flags().IntVarP(&membershipSamples, "samples", "n", 10, "number of steps across each variable range")
	membershipCmd.Flags().StringVar(&membershipVariable, "variable", "", "only print this variable")
	membershipCmd.Flags().BoolVar(&membershipJSON, "json", false, "print JSON instead of tables")
}

func runMembership(cmd *cobra.Command, args []string) error {
	if membershipSamples < 1 {
		return fmt.Errorf("--samples must be at least 1")
	}

	eng, err := buildEngine(config.Get().Engine)
	if err != nil {
		return err
	}

	curves := eng.Curves(membershipSamples)
	if membershipVariable != "" {
		filtered := curves[:0]
		for _, vc := range curves {
			if vc.Variable == membershipVariable {
				filtered = append(filtered, vc)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown variable %q", membershipVariable)
		}
		curves = filtered
	}

	if membershipJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(curves)
	}

	w := newWriter(cmd.OutOrStdout())
	for _, vc := range curves {
		title := fmt.Sprintf("%s (%s)", vc.Label, vc.Kind)
		if vc.Unit != "" {
			title = fmt.Sprintf("%s [%s] (%s)", vc.Label, vc.Unit, vc.Kind)
		}
		w.SubHeader(title)
		for _, tc := range vc.Terms {
			w.Printf("  %s: %s\n", tc.Term, tc.Function)
		}

		headers := []string{"x"}
		for _, tc := range vc.Terms {
			headers = append(headers, tc.Term)
		}
		table := w.NewTable(headers...)
		for i := 0; i <= membershipSamples; i++ {
			row := []string{output.Round(vc.Terms[0].Points[i].X).String()}
			for _, tc := range vc.Terms {
				row = append(row, output.Round(tc.Points[i].Degree).StringFixed(output.Places))
			}
			table.AddRow(row...)
		}
		table.Render()
		w.Println("")
	}
	return nil
}
