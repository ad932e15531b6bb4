// Package cmd - rules commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netdiag/adapters/rulefile"
	"netdiag/core/linguistic"
	"netdiag/internal/config"
)

var (
	rulesExportFormat string
	rulesExportOutput string
	rulesOverrides    engineOverrides
)

// rulesCmd groups the rule base commands
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect, validate and export rule sets",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules of the active rule set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine(rulesOverrides.apply(cmd, config.Get().Engine))
		if err != nil {
			return err
		}

		describeEngine(cmd, eng)

		w := newWriter(cmd.OutOrStdout())
		table := w.NewTable("ID", "Condition", "Conclusion")
		for _, r := range eng.Rules() {
			table.AddRow(r.ID, r.When.String(), r.Then.String())
		}
		table.Render()
		w.Println("")
		w.Printf("%d rules\n", len(eng.Rules()))
		return nil
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate rule files against the built-in variables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := linguistic.Default()
		if err != nil {
			return err
		}

		w := newWriter(cmd.OutOrStdout())
		failed := 0
		for _, path := range args {
			rs, err := rulefile.Load(path, reg)
			if err != nil {
				w.Error("%s: %v", path, err)
				failed++
				continue
			}
			w.Success("%s: %d rules", path, len(rs))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d rule files are invalid", failed, len(args))
		}
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active rule set as HCL, YAML or JSON",
	Long: `Write the active rule set as HCL, YAML or JSON.

The output can be edited and loaded back with --rules or engine.rules_file.

Examples:
  netdiag rules export --format hcl > rules.hcl
  netdiag rules export --format yaml -o rules.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine(rulesOverrides.apply(cmd, config.Get().Engine))
		if err != nil {
			return err
		}

		if rulesExportOutput == "" {
			return rulefile.Write(cmd.OutOrStdout(), eng.Rules(), rulefile.Format(rulesExportFormat))
		}

		f, err := os.Create(rulesExportOutput)
		if err != nil {
			return err
		}
		if err := rulefile.Write(f, eng.Rules(), rulefile.Format(rulesExportFormat)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		newWriter(cmd.ErrOrStderr()).Info("wrote %d rules to %s", len(eng.Rules()), rulesExportOutput)
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesExportCmd)

	rulesCmd.PersistentFlags().StringVar(&rulesOverrides.rulesFile, "rules", "", "rule file replacing the built-in rules")
	rulesExportCmd.Flags().StringVarP(&rulesExportFormat, "format", "f", string(rulefile.FormatHCL), "rule file format (hcl, yaml, json)")
	rulesExportCmd.Flags().StringVarP(&rulesExportOutput, "output", "o", "", "write to a file instead of stdout")
}
