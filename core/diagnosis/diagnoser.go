// Package diagnosis runs the full fuzzy pipeline for one set of symptoms:
// fuzzification, rule inference, defuzzification, selection of the principal
// diagnosis and recommendations.
package diagnosis

import (
	"fmt"

	"go.uber.org/zap"

	"netdiag/core/defuzzify"
	"netdiag/core/inference"
	"netdiag/core/linguistic"
	"netdiag/core/recommend"
	"netdiag/core/rules"
	"netdiag/core/types"
	"netdiag/internal/errors"
)

// SecondaryAdvisor adds preventive advice for non-principal categories
type SecondaryAdvisor interface {
	Secondary(principal string, order []string, scores map[string]float64) []string
}

// Diagnoser is an immutable, fully validated diagnosis pipeline.
// It is safe for concurrent use.
type Diagnoser struct {
	registry    *linguistic.Registry
	engine      *inference.Engine
	strategy    defuzzify.Strategy
	recommender recommend.Recommender
	secondary   SecondaryAdvisor
	order       []string
	logger      *zap.Logger
}

// Option configures a Diagnoser
type Option func(*Diagnoser)

// WithStrategy sets the defuzzification strategy (default: discrete)
func WithStrategy(s defuzzify.Strategy) Option {
	return func(d *Diagnoser) {
		if s != nil {
			d.strategy = s
		}
	}
}

// WithRecommender sets the recommendation table (default: recommend.Default)
func WithRecommender(r recommend.Recommender) Option {
	return func(d *Diagnoser) {
		if r != nil {
			d.recommender = r
		}
	}
}

// WithSecondaryAdvice appends preventive advice for other categories scoring
// above recommend.SecondaryThreshold. A nil advisor disables it.
func WithSecondaryAdvice(a SecondaryAdvisor) Option {
	return func(d *Diagnoser) {
		d.secondary = a
	}
}

// WithLogger sets the logger (default: no-op)
func WithLogger(l *zap.Logger) Option {
	return func(d *Diagnoser) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Diagnoser over a registry and a rule base that was validated
// against it.
func New(reg *linguistic.Registry, base *rules.Base, opts ...Option) *Diagnoser {
	d := &Diagnoser{
		registry:    reg,
		engine:      inference.NewEngine(reg, base),
		strategy:    defuzzify.NewDiscrete(),
		recommender: recommend.Default(),
		order:       reg.OutputNames(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Strategy returns the name of the defuzzification strategy in use
func (d *Diagnoser) Strategy() string {
	return d.strategy.Name()
}

// Registry returns the registry the diagnoser was built from
func (d *Diagnoser) Registry() *linguistic.Registry {
	return d.registry
}

// Diagnose runs the pipeline. It never panics: an unexpected failure is
// reported through the Error field with empty scores and rules and a single
// support recommendation.
func (d *Diagnoser) Diagnose(s types.Symptoms) types.DiagnosisResult {
	return d.Explain(s).Result
}

// Explanation is a diagnosis together with its intermediate stages
type Explanation struct {
	// Degrees are the fuzzified inputs
	Degrees linguistic.Degrees `json:"degrees"`

	// Aggregation is the max-aggregated degree of every output term
	Aggregation inference.Aggregation `json:"aggregation"`

	// Result is the final diagnosis
	Result types.DiagnosisResult `json:"result"`
}

// Explain runs the pipeline and keeps the intermediate stages. Failures are
// recovered as in Diagnose and leave Degrees and Aggregation nil.
func (d *Diagnoser) Explain(s types.Symptoms) (ex Explanation) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Internal("diagnosis failed", fmt.Errorf("%v", r))
			d.logger.Error("diagnosis panicked",
				zap.Any("symptoms", s),
				zap.Error(err),
			)
			ex = Explanation{Result: Failure(err)}
		}
	}()

	return d.run(s.Values())
}

func (d *Diagnoser) run(values map[string]float64) Explanation {
	degrees := d.registry.Fuzzify(values)
	inferred := d.engine.Infer(degrees)

	scores := make([]Score, 0, len(d.order))
	byName := make(map[string]float64, len(d.order))
	for _, name := range d.order {
		v := d.strategy.Defuzzify(inferred.Aggregation[name])
		scores = append(scores, Score{Variable: name, Value: v})
		byName[name] = v
	}

	best, ok := Select(scores)
	if !ok {
		panic("registry declares no output variables")
	}

	recs := d.recommender.Recommend(best.Variable, best.Value)
	if d.secondary != nil {
		recs = append(recs, d.secondary.Secondary(best.Variable, d.order, byName)...)
	}

	d.logger.Debug("diagnosis computed",
		zap.String("diagnosis", best.Variable),
		zap.Float64("score", best.Value),
		zap.Int("activated_rules", len(inferred.Activated)),
		zap.String("strategy", d.strategy.Name()),
	)

	return Explanation{
		Degrees:     degrees,
		Aggregation: inferred.Aggregation,
		Result: types.DiagnosisResult{
			Scores:          byName,
			Diagnosis:       best.Variable,
			Label:           d.registry.Label(best.Variable),
			Score:           best.Value,
			ActivatedRules:  inferred.Activated,
			Recommendations: recs,
		},
	}
}

// Failure builds the result reported when a diagnosis cannot be computed
func Failure(err error) types.DiagnosisResult {
	return types.DiagnosisResult{
		Scores:          map[string]float64{},
		ActivatedRules:  []types.ActivatedRule{},
		Recommendations: []string{recommend.SupportMessage},
		Error:           fmt.Sprintf("diagnosis error: %v", err),
	}
}
