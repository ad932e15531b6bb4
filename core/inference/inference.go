// Package inference evaluates the rule base against fuzzified inputs and
// aggregates the consequents by maximum.
package inference

import (
	"math"

	"netdiag/core/linguistic"
	"netdiag/core/rules"
	"netdiag/core/types"
)

// Aggregation maps output variable -> term -> aggregated degree
type Aggregation map[string]map[string]float64

// Result is the outcome of one inference pass
type Result struct {
	// Aggregation holds every declared output term, 0 when nothing fired
	Aggregation Aggregation

	// Activated lists the rules that fired with strength > 0, in rule-base order
	Activated []types.ActivatedRule
}

// Engine runs a rule base over the output terms of a registry.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	outputs []linguistic.Variable
	base    *rules.Base
}

// NewEngine creates an engine. The rule base must have been validated
// against the same registry.
func NewEngine(reg *linguistic.Registry, base *rules.Base) *Engine {
	return &Engine{
		outputs: reg.Outputs(),
		base:    base,
	}
}

// Infer fires every rule in order. A rule with strength 0 is inert under max
// aggregation and is only left out of the trace.
func (e *Engine) Infer(in linguistic.Degrees) Result {
	agg := e.newAggregation()
	var activated []types.ActivatedRule

	e.base.Each(func(r rules.Rule) {
		s := r.When.Eval(in)
		if !(s > 0) {
			return
		}
		activated = append(activated, types.ActivatedRule{
			RuleID:   r.ID,
			Rule:     r.Label(),
			Strength: s,
		})

		terms := agg[r.Then.Variable]
		terms[r.Then.Term] = math.Max(terms[r.Then.Term], s)
	})

	if activated == nil {
		activated = []types.ActivatedRule{}
	}
	return Result{Aggregation: agg, Activated: activated}
}

func (e *Engine) newAggregation() Aggregation {
	agg := make(Aggregation, len(e.outputs))
	for _, v := range e.outputs {
		terms := make(map[string]float64, len(v.Terms))
		for _, t := range v.Terms {
			terms[t.Name] = 0
		}
		agg[v.Name] = terms
	}
	return agg
}
