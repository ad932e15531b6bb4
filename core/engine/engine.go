// Package engine provides the diagnosis engine used by every surface.
// CLI and HTTP are thin wrappers around this engine.
package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"netdiag/core/diagnosis"
	"netdiag/core/linguistic"
	"netdiag/core/membership"
	"netdiag/core/rules"
	"netdiag/core/types"
)

// DefaultBatchLimit bounds concurrent diagnoses in a batch when no limit is given
const DefaultBatchLimit = 8

// Engine is the primary API for network diagnosis.
// All other interfaces (CLI, HTTP) are thin wrappers.
type Engine struct {
	registry  *linguistic.Registry
	base      *rules.Base
	diagnoser *diagnosis.Diagnoser
	config    Config
	logger    *zap.Logger
}

// Config configures the engine
type Config struct {
	// Defuzzifier names the defuzzification strategy (discrete, continuous)
	Defuzzifier string `json:"defuzzifier"`

	// Samples is the number of steps of the continuous centroid
	Samples int `json:"samples"`

	// RulesFile is an optional HCL or YAML rule set replacing the built-in rules
	RulesFile string `json:"rules_file,omitempty"`

	// SecondaryAdvice adds preventive advice for runner-up categories
	SecondaryAdvice bool `json:"secondary_advice"`
}

// Diagnose diagnoses one set of symptoms
func (e *Engine) Diagnose(s types.Symptoms) types.DiagnosisResult {
	return e.diagnoser.Diagnose(s)
}

// Explain diagnoses one set of symptoms and keeps the intermediate stages
func (e *Engine) Explain(s types.Symptoms) diagnosis.Explanation {
	return e.diagnoser.Explain(s)
}

// DiagnoseBatch diagnoses every item with at most limit diagnoses in flight.
// Results are in input order. It stops early only when ctx is cancelled.
func (e *Engine) DiagnoseBatch(ctx context.Context, items []types.Symptoms, limit int) ([]types.DiagnosisResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	results := make([]types.DiagnosisResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.diagnoser.Diagnose(items[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait cancels gctx, so only the caller's ctx is checked.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("batch diagnosed", zap.Int("items", len(items)), zap.Int("limit", limit))
	return results, nil
}

// Registry returns the linguistic variables of the engine
func (e *Engine) Registry() *linguistic.Registry {
	return e.registry
}

// Rules returns a copy of the rule base in evaluation order
func (e *Engine) Rules() []rules.Rule {
	return e.base.Rules()
}

// Strategy returns the name of the defuzzification strategy in use
func (e *Engine) Strategy() string {
	return e.diagnoser.Strategy()
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() Config {
	return e.config
}

// TermCurve is the sampled membership function of one term
type TermCurve struct {
	Term     string             `json:"term"`
	Function string             `json:"function"`
	Points   []membership.Point `json:"points"`
}

// VariableCurves holds the sampled terms of one variable
type VariableCurves struct {
	Variable string      `json:"variable"`
	Label    string      `json:"label"`
	Unit     string      `json:"unit"`
	Kind     string      `json:"kind"`
	Min      float64     `json:"min"`
	Max      float64     `json:"max"`
	Terms    []TermCurve `json:"terms"`
}

// Curves samples every term of every variable at n+1 points across the
// variable range, inputs first.
func (e *Engine) Curves(n int) []VariableCurves {
	if n < 1 {
		n = 100
	}

	var out []VariableCurves
	add := func(kind string, vars []linguistic.Variable) {
		for _, v := range vars {
			vc := VariableCurves{
				Variable: v.Name,
				Label:    v.Label,
				Unit:     v.Unit,
				Kind:     kind,
				Min:      v.Min,
				Max:      v.Max,
				Terms:    make([]TermCurve, 0, len(v.Terms)),
			}
			for _, t := range v.Terms {
				vc.Terms = append(vc.Terms, TermCurve{
					Term:     t.Name,
					Function: t.Function.String(),
					Points:   membership.Curve(t.Function, v.Min, v.Max, n),
				})
			}
			out = append(out, vc)
		}
	}
	add("input", e.registry.Inputs())
	add("output", e.registry.Outputs())
	return out
}
