package engine

import (
	"go.uber.org/zap"

	"netdiag/core/defuzzify"
	"netdiag/core/diagnosis"
	"netdiag/core/linguistic"
	"netdiag/core/recommend"
	"netdiag/core/rules"
	"netdiag/internal/errors"
)

// RuleLoader reads a rule set from a file and validates it against schema
type RuleLoader func(path string, schema rules.Schema) ([]rules.Rule, error)

// Builder is the only way to obtain an Engine. Every definition is validated
// once in Build, so a built engine cannot fail on configuration.
type Builder struct {
	config      Config
	inputs      []linguistic.Variable
	outputs     []linguistic.Variable
	rules       []rules.Rule
	loader      RuleLoader
	recommender *recommend.Table
	logger      *zap.Logger
}

// NewBuilder starts a builder with the shipped variables, rules and advice
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		config: cfg,
		logger: zap.NewNop(),
	}
}

// WithVariables replaces the shipped linguistic variables
func (b *Builder) WithVariables(inputs, outputs []linguistic.Variable) *Builder {
	b.inputs, b.outputs = inputs, outputs
	return b
}

// WithRules replaces the shipped rule set. Config.RulesFile takes precedence.
func (b *Builder) WithRules(rs []rules.Rule) *Builder {
	b.rules = rs
	return b
}

// WithRuleLoader sets the reader used for Config.RulesFile
func (b *Builder) WithRuleLoader(l RuleLoader) *Builder {
	b.loader = l
	return b
}

// WithRecommendations replaces the shipped advice table
func (b *Builder) WithRecommendations(t *recommend.Table) *Builder {
	b.recommender = t
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Build validates every definition and returns the engine
func (b *Builder) Build() (*Engine, error) {
	inputs, outputs := b.inputs, b.outputs
	if inputs == nil {
		inputs = linguistic.DefaultInputs()
	}
	if outputs == nil {
		outputs = linguistic.DefaultOutputs()
	}
	reg, err := linguistic.NewRegistry(inputs, outputs)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid linguistic variables", err)
	}

	rs, err := b.ruleSet(reg)
	if err != nil {
		return nil, err
	}
	base, err := rules.NewBase(rs, reg)
	if err != nil {
		return nil, err
	}

	strategy, err := defuzzify.ByName(b.config.Defuzzifier, b.config.Samples)
	if err != nil {
		return nil, err
	}

	table := b.recommender
	if table == nil {
		table = recommend.Default()
	}

	opts := []diagnosis.Option{
		diagnosis.WithStrategy(strategy),
		diagnosis.WithRecommender(table),
		diagnosis.WithLogger(b.logger.Named("diagnosis")),
	}
	if b.config.SecondaryAdvice {
		opts = append(opts, diagnosis.WithSecondaryAdvice(table))
	}

	cfg := b.config
	cfg.Defuzzifier = strategy.Name()

	b.logger.Debug("engine built",
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(outputs)),
		zap.Int("rules", base.Len()),
		zap.String("defuzzifier", strategy.Name()),
		zap.Bool("secondary_advice", cfg.SecondaryAdvice),
	)

	return &Engine{
		registry:  reg,
		base:      base,
		diagnoser: diagnosis.New(reg, base, opts...),
		config:    cfg,
		logger:    b.logger,
	}, nil
}

func (b *Builder) ruleSet(reg *linguistic.Registry) ([]rules.Rule, error) {
	if b.config.RulesFile != "" {
		if b.loader == nil {
			return nil, errors.Config("a rules file is configured but no rule loader is available").
				WithContext("rules_file", b.config.RulesFile)
		}
		rs, err := b.loader(b.config.RulesFile, reg)
		if err != nil {
			return nil, err
		}
		b.logger.Info("rule set loaded", zap.String("path", b.config.RulesFile), zap.Int("rules", len(rs)))
		return rs, nil
	}
	if b.rules != nil {
		return b.rules, nil
	}
	return rules.Default(), nil
}
