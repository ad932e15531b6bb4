// Package cmd - diagnose command
package cmd

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netdiag/core/cases"
	"netdiag/core/diagnosis"
	"netdiag/core/engine"
	"netdiag/core/output"
	"netdiag/core/types"
	"netdiag/core/ui"
	"netdiag/internal/config"
	"netdiag/internal/errors"
	"netdiag/internal/logging"
)

var (
	diagSymptoms  types.Symptoms
	diagCase      string
	diagFormat    string
	diagExplain   bool
	diagOverrides engineOverrides
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose one set of symptoms",
	Long: `Diagnose one set of network symptoms.

Readings not given on the command line are taken as 0, or from --case when a
built-in case is selected.

Examples:
  netdiag diagnose --upload 1.5 --loss 18 --dns 0.2 --wifi 85 --connection 40
  netdiag diagnose --case healthy --wifi 20
  netdiag diagnose --case dns --explain --format json
  netdiag diagnose --case isp --defuzzifier continuous`,
	Args: cobra.NoArgs,
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.Float64Var(&diagSymptoms.Connection, "connection", 0, "connection availability (%)")
	f.Float64Var(&diagSymptoms.UploadSpeed, "upload", 0, "upload speed (Mbps)")
	f.Float64Var(&diagSymptoms.PacketLoss, "loss", 0, "packet loss (%)")
	f.Float64Var(&diagSymptoms.DNSErrors, "dns", 0, "DNS errors per hour")
	f.Float64Var(&diagSymptoms.WiFiSignal, "wifi", 0, "Wi-Fi signal strength (%)")
	f.StringVar(&diagCase, "case", "", "start from a built-in case (see 'netdiag cases')")
	f.StringVarP(&diagFormat, "format", "f", "cli", "output format (cli, json, markdown)")
	f.BoolVar(&diagExplain, "explain", false, "show fuzzified inputs and aggregated outputs")
	diagOverrides.register(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	symptoms, name, err := diagnoseInput(cmd)
	if err != nil {
		return err
	}

	eng, err := buildEngine(diagOverrides.apply(cmd, config.Get().Engine))
	if err != nil {
		return err
	}
	f, err := formatter(cmd, diagFormat)
	if err != nil {
		return err
	}

	describeEngine(cmd, eng)
	logging.Debug("diagnosing", zap.Any("symptoms", symptoms))

	ex := eng.Explain(symptoms)
	out := cmd.OutOrStdout()

	switch {
	case diagExplain && f.Format() == output.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ex); err != nil {
			return err
		}
	default:
		if diagExplain {
			renderExplanation(newWriter(out), eng, ex)
		}
		if err := f.Render(out, newReport(eng, name, symptoms, ex.Result)); err != nil {
			return err
		}
	}

	if ex.Result.Failed() {
		return fmt.Errorf("%s", ex.Result.Error)
	}
	return nil
}

// diagnoseInput merges the selected case with the readings given as flags
func diagnoseInput(cmd *cobra.Command) (types.Symptoms, string, error) {
	for _, name := range []string{"connection", "upload", "loss", "dns", "wifi"} {
		f := cmd.Flags().Lookup(name)
		if !f.Changed {
			continue
		}
		if v, err := cmd.Flags().GetFloat64(name); err == nil && (math.IsInf(v, 0) || math.IsNaN(v)) {
			return types.Symptoms{}, "", errors.Newf(errors.TypeInput, "--%s must be a finite number, got %s", name, f.Value.String())
		}
	}

	if diagCase == "" {
		return diagSymptoms, "", nil
	}

	c, ok := cases.Find(diagCase)
	if !ok {
		return types.Symptoms{}, "", errors.Newf(errors.TypeNotFound, "unknown case %q", diagCase)
	}

	s := c.Symptoms
	flags := cmd.Flags()
	if flags.Changed("connection") {
		s.Connection = diagSymptoms.Connection
	}
	if flags.Changed("upload") {
		s.UploadSpeed = diagSymptoms.UploadSpeed
	}
	if flags.Changed("loss") {
		s.PacketLoss = diagSymptoms.PacketLoss
	}
	if flags.Changed("dns") {
		s.DNSErrors = diagSymptoms.DNSErrors
	}
	if flags.Changed("wifi") {
		s.WiFiSignal = diagSymptoms.WiFiSignal
	}
	return s, c.Name, nil
}

// renderExplanation prints the non-zero membership degrees of every stage
func renderExplanation(w *ui.Writer, eng *engine.Engine, ex diagnosis.Explanation) {
	reg := eng.Registry()

	w.SubHeader("Fuzzified inputs")
	in := w.NewTable("Variable", "Term", "Degree")
	for _, v := range reg.Inputs() {
		for _, t := range v.Terms {
			if d := ex.Degrees.Of(v.Name, t.Name); d > 0 {
				in.AddRow(v.Label, t.Name, output.Round(d).StringFixed(output.Places))
			}
		}
	}
	in.Render()

	w.SubHeader("Aggregated outputs")
	agg := w.NewTable("Diagnosis", "Term", "Degree")
	for _, v := range reg.Outputs() {
		for _, t := range v.Terms {
			if d := ex.Aggregation[v.Name][t.Name]; d > 0 {
				agg.AddRow(v.Label, t.Name, output.Round(d).StringFixed(output.Places))
			}
		}
	}
	agg.Render()
	w.Println("")
}
