package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lv "netdiag/core/linguistic"
	"netdiag/core/output"
	"netdiag/internal/errors"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, args...)
	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "netdiag version "+version+"\n", out)
}

func TestDiagnoseFromFlags(t *testing.T) {
	out, err := execute(t, "diagnose", "--upload", "1.5", "--loss", "18", "--dns", "0.2", "--wifi", "85", "--connection", "40", "--format", "json")
	require.NoError(t, err)

	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, lv.RouterFailure, report.Result.Diagnosis)
	assert.Equal(t, 75.0, report.Result.Score)
	assert.Equal(t, "discrete", report.Strategy)
}

func TestDiagnoseCaseWithOverride(t *testing.T) {
	out, err := execute(t, "diagnose", "--case", "dns", "--format", "json")
	require.NoError(t, err)
	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, lv.DNSProblem, report.Result.Diagnosis)
	assert.Equal(t, "DNS fault", report.Name)

	out, err = execute(t, "diagnose", "--case", "healthy", "--wifi", "100", "--defuzzifier", "continuous", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, lv.NoFault, report.Result.Diagnosis)
	assert.Equal(t, "continuous", report.Strategy)
	assert.Equal(t, 83.5, report.Result.Score)
}

func TestDiagnoseExplain(t *testing.T) {
	out, err := execute(t, "diagnose", "--case", "isp", "--explain", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Fuzzified inputs")
	assert.Contains(t, out, "Aggregated outputs")
	assert.Contains(t, out, "## Network diagnosis: ISP or router fault")
}

func TestDiagnoseErrors(t *testing.T) {
	_, err := execute(t, "diagnose", "--case", "nope")
	assert.ErrorContains(t, err, "unknown case")

	_, err = execute(t, "diagnose", "--format", "html")
	assert.Error(t, err)

	_, err = execute(t, "diagnose", "--defuzzifier", "bisector")
	assert.Error(t, err)

	for _, v := range []string{"+Inf", "-Inf", "NaN"} {
		out, err := execute(t, "diagnose", "--connection", v, "--format", "json")
		require.Error(t, err, v)
		assert.True(t, errors.IsType(err, errors.TypeInput), v)
		assert.ErrorContains(t, err, "--connection must be a finite number")
		assert.Empty(t, out)
	}
}

func TestVerboseReportsEngine(t *testing.T) {
	_, stderr, err := executeWithStderr(t, "diagnose", "--case", "dns", "--format", "json")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "engine:")

	_, stderr, err = executeWithStderr(t, "-v", "diagnose", "--case", "dns", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "engine: discrete defuzzifier, 31 rules")
}

func TestCasesCheck(t *testing.T) {
	out, err := execute(t, "cases", "--check", "--format", "json")
	require.NoError(t, err)

	var reports []output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Len(t, reports, 6)

	out, err = execute(t, "cases", "isp", "healthy", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, lv.NoFault, reports[1].Result.Diagnosis)
}

func TestRulesExportValidateAndLoad(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"hcl", "yaml", "json"} {
		path := filepath.Join(dir, "rules."+format)
		_, err := execute(t, "rules", "export", "--format", format, "-o", path)
		require.NoError(t, err, format)

		out, err := execute(t, "rules", "validate", path)
		require.NoError(t, err, format)
		assert.Contains(t, out, "31 rules")

		out, err = execute(t, "diagnose", "--case", "wifi", "--rules", path, "--format", "json")
		require.NoError(t, err, format)
		var report output.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, lv.WeakWiFi, report.Result.Diagnosis, format)
	}

	_, err := execute(t, "rules", "validate", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRulesList(t *testing.T) {
	out, err := execute(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "R13")
	assert.Contains(t, out, "isp_failure.probable")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "31 rules"))
}

func TestMembershipTablesKeepPercentUnits(t *testing.T) {
	out, err := execute(t, "membership", "--samples", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ Connection [%] (input)")
	assert.Contains(t, out, "▸ Wi-Fi signal [%] (input)")
	assert.NotContains(t, out, "%!")
}

func TestMembership(t *testing.T) {
	out, err := execute(t, "membership", "--variable", "wifi_signal", "--samples", "4", "--json")
	require.NoError(t, err)

	var curves []struct {
		Variable string `json:"variable"`
		Terms    []struct {
			Term   string `json:"term"`
			Points []struct {
				X      float64 `json:"x"`
				Degree float64 `json:"degree"`
			} `json:"points"`
		} `json:"terms"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &curves))
	require.Len(t, curves, 1)
	assert.Equal(t, "wifi_signal", curves[0].Variable)
	require.Len(t, curves[0].Terms, 3)
	assert.Len(t, curves[0].Terms[0].Points, 5)

	_, err = execute(t, "membership", "--variable", "latency")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.json")

	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}
