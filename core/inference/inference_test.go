package inference

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	lv "netdiag/core/linguistic"
	"netdiag/core/rules"
	"netdiag/core/types"
)

func newEngine(t *testing.T, rs []rules.Rule) (*lv.Registry, *Engine) {
	t.Helper()
	reg, err := lv.Default()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	base, err := rules.NewBase(rs, reg)
	if err != nil {
		t.Fatalf("rule base: %v", err)
	}
	return reg, NewEngine(reg, base)
}

// TestAggregationInitialisesEveryTerm proves all declared output terms start at 0
func TestAggregationInitialisesEveryTerm(t *testing.T) {
	reg, engine := newEngine(t, rules.Default())

	// nothing fires: every reading sits outside every support
	res := engine.Infer(lv.Degrees{})

	if len(res.Activated) != 0 {
		t.Fatalf("expected no activated rules, got %d", len(res.Activated))
	}
	if res.Activated == nil {
		t.Error("activated list should be empty, not nil")
	}
	for _, v := range reg.Outputs() {
		terms, ok := res.Aggregation[v.Name]
		if !ok {
			t.Fatalf("missing aggregation for %s", v.Name)
		}
		for _, term := range v.TermNames() {
			if d, ok := terms[term]; !ok || d != 0 {
				t.Errorf("%s.%s = %v (present=%v), want 0", v.Name, term, d, ok)
			}
		}
	}
}

// TestAggregationIsMaximum proves two rules sharing a consequent aggregate to the larger strength,
// in either evaluation order.
func TestAggregationIsMaximum(t *testing.T) {
	weak := rules.Rule{ID: "weak", When: rules.Is(lv.PacketLoss, "moderada"), Then: rules.Ref{Variable: lv.ISPFailure, Term: lv.Probable}}
	strong := rules.Rule{ID: "strong", When: rules.Is(lv.Connection, "intermitente"), Then: rules.Ref{Variable: lv.ISPFailure, Term: lv.Probable}}

	in := lv.Degrees{
		lv.PacketLoss: {"moderada": 0.3},
		lv.Connection: {"intermitente": 0.8},
	}

	for _, order := range [][]rules.Rule{{weak, strong}, {strong, weak}} {
		_, engine := newEngine(t, order)
		res := engine.Infer(in)

		if got := res.Aggregation[lv.ISPFailure][lv.Probable]; got != 0.8 {
			t.Errorf("order %s,%s: aggregated %v, want 0.8", order[0].ID, order[1].ID, got)
		}
		if len(res.Activated) != 2 {
			t.Errorf("expected both rules in the trace, got %d", len(res.Activated))
		}
	}
}

// TestActivatedRulesFollowRuleBaseOrder proves the trace order is the rule-base order
func TestActivatedRulesFollowRuleBaseOrder(t *testing.T) {
	reg, engine := newEngine(t, rules.Default())

	in := reg.Fuzzify(map[string]float64{
		lv.Connection:  40,
		lv.UploadSpeed: 1.5,
		lv.PacketLoss:  18,
		lv.DNSErrors:   0.2,
		lv.WiFiSignal:  85,
	})
	res := engine.Infer(in)

	want := []types.ActivatedRule{
		{RuleID: "R1", Strength: 0.6},
		{RuleID: "R2", Strength: 0.6},
		{RuleID: "R6", Strength: 1},
		{RuleID: "R10", Strength: 2.0 / 3.0},
		{RuleID: "R13", Strength: 0.6},
		{RuleID: "R14", Strength: 0.6},
		{RuleID: "R18", Strength: 2.0 / 3.0},
		{RuleID: "R26", Strength: 0.6},
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(types.ActivatedRule{}, "Rule"),
		cmpopts.EquateApprox(0, 1e-9),
	}
	if diff := cmp.Diff(want, res.Activated, opts); diff != "" {
		t.Errorf("activated rules mismatch (-want +got):\n%s", diff)
	}

	agg := res.Aggregation
	checks := []struct {
		variable, term string
		want           float64
	}{
		{lv.RouterFailure, lv.Probable, 0.6},
		{lv.ISPFailure, lv.Probable, 2.0 / 3.0},
		{lv.ISPFailure, lv.Possible, 2.0 / 3.0},
		{lv.ServerSaturation, lv.Probable, 1},
		{lv.DNSProblem, lv.Probable, 0},
		{lv.NoFault, lv.Probable, 0},
	}
	for _, c := range checks {
		if diff := cmp.Diff(c.want, agg[c.variable][c.term], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s.%s mismatch: %s", c.variable, c.term, diff)
		}
	}
}

func TestActivatedRuleFallsBackToID(t *testing.T) {
	rule := rules.Rule{ID: "X1", When: rules.Not(rules.Is(lv.WiFiSignal, "fuerte")), Then: rules.Ref{Variable: lv.WeakWiFi, Term: lv.Possible}}
	_, engine := newEngine(t, []rules.Rule{rule})

	res := engine.Infer(lv.Degrees{lv.WiFiSignal: {"fuerte": 0.25}})
	if len(res.Activated) != 1 {
		t.Fatalf("expected one activation, got %d", len(res.Activated))
	}
	if res.Activated[0].Rule != "X1" {
		t.Errorf("rule without description should report its id, got %q", res.Activated[0].Rule)
	}
	if res.Activated[0].Strength != 0.75 {
		t.Errorf("strength = %v, want 0.75", res.Activated[0].Strength)
	}
}
