package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"netdiag/adapters/rulefile"
	"netdiag/core/engine"
	"netdiag/core/output"
	"netdiag/core/types"
	"netdiag/core/ui"
	"netdiag/internal/config"
	"netdiag/internal/logging"
)

// engineOverrides are the per-command flags that replace engine settings
type engineOverrides struct {
	defuzzifier string
	rulesFile   string
	secondary   bool
}

func (o *engineOverrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.defuzzifier, "defuzzifier", "", "defuzzification strategy (discrete, continuous)")
	cmd.Flags().StringVar(&o.rulesFile, "rules", "", "rule file (.hcl, .yaml, .json) replacing the built-in rules")
	cmd.Flags().BoolVar(&o.secondary, "secondary", false, "add preventive advice for runner-up diagnoses")
}

// apply copies the changed flags of cmd over cfg
func (o *engineOverrides) apply(cmd *cobra.Command, cfg engine.Config) engine.Config {
	if cmd.Flags().Changed("defuzzifier") {
		cfg.Defuzzifier = o.defuzzifier
	}
	if cmd.Flags().Changed("rules") {
		cfg.RulesFile = o.rulesFile
	}
	if cmd.Flags().Changed("secondary") {
		cfg.SecondaryAdvice = o.secondary
	}
	return cfg
}

// buildEngine builds the diagnosis engine from configuration
func buildEngine(cfg engine.Config) (*engine.Engine, error) {
	return engine.NewBuilder(cfg).
		WithRuleLoader(rulefile.Load).
		WithLogger(logging.Named("engine")).
		Build()
}

// newWriter returns a UI writer honouring --verbose and the color settings
func newWriter(w io.Writer) *ui.Writer {
	out := ui.NewWriter(w, config.Get().Output.NoColor || !isTerminal(w))
	if verbose {
		out.SetVerbosity(2)
	}
	return out
}

// describeEngine reports the active engine settings on stderr when verbose
func describeEngine(cmd *cobra.Command, eng *engine.Engine) {
	newWriter(cmd.ErrOrStderr()).Debug("engine: %s defuzzifier, %d rules", eng.Strategy(), len(eng.Rules()))
}

// newReport wraps a result for rendering
func newReport(eng *engine.Engine, name string, s types.Symptoms, res types.DiagnosisResult) *output.Report {
	reg := eng.Registry()
	order := reg.OutputNames()
	labels := make(map[string]string, len(order))
	for _, o := range order {
		labels[o] = reg.Label(o)
	}
	return &output.Report{
		Name:     name,
		Symptoms: s,
		Result:   res,
		Strategy: eng.Strategy(),
		Order:    order,
		Labels:   labels,
	}
}

// formatter resolves an output format, falling back to the configured default
func formatter(cmd *cobra.Command, flag string) (output.Formatter, error) {
	cfg := config.Get()
	format := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("format") {
		format = flag
	}
	return output.NewRegistry(output.Options{
		ShowRules: cfg.Output.ShowRules,
		NoColor:   cfg.Output.NoColor || !isTerminal(cmd.OutOrStdout()),
	}).Get(output.Format(format))
}

// isTerminal reports whether w is a character device
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
