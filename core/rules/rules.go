// Package rules defines the fuzzy rule base: an ordered, immutable sequence of
// rules whose antecedents are expression trees over fuzzified inputs.
package rules

import (
	"fmt"

	"netdiag/internal/errors"
)

// Rule is one IF-THEN statement of the rule base
type Rule struct {
	// ID uniquely identifies the rule, e.g. "R13"
	ID string `json:"id" yaml:"id"`

	// Description is reported when the rule fires
	Description string `json:"description" yaml:"description"`

	// When is the antecedent
	When Expr `json:"when" yaml:"when"`

	// Then is the consequent: one output variable and term
	Then Ref `json:"then" yaml:"then"`
}

// Label returns the description, or the ID when no description is set
func (r Rule) Label() string {
	if r.Description != "" {
		return r.Description
	}
	return r.ID
}

// Schema answers whether rule references exist
type Schema interface {
	HasInputTerm(variable, term string) bool
	HasOutputTerm(variable, term string) bool
}

// Base is a validated, ordered rule set
type Base struct {
	rules []Rule
}

// NewBase validates every rule against schema and returns the rule base.
// Validation happens once here so that evaluation never meets a dangling
// reference.
func NewBase(rules []Rule, schema Schema) (*Base, error) {
	if len(rules) == 0 {
		return nil, errors.Config("rule base is empty")
	}

	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			return nil, errors.Rule(fmt.Sprintf("#%d", i+1), fmt.Sprintf("rule #%d has no id", i+1))
		}
		if seen[r.ID] {
			return nil, errors.Rule(r.ID, fmt.Sprintf("duplicate rule id %s", r.ID))
		}
		seen[r.ID] = true

		if err := Validate(r, schema); err != nil {
			return nil, err
		}
	}

	b := &Base{rules: make([]Rule, len(rules))}
	for i, r := range rules {
		b.rules[i] = clone(r)
	}
	return b, nil
}

// Validate checks the structure and references of a single rule
func Validate(r Rule, schema Schema) error {
	if err := r.When.check(); err != nil {
		return errors.Rule(r.ID, fmt.Sprintf("rule %s: %v", r.ID, err))
	}
	for _, ref := range r.When.Refs() {
		if !schema.HasInputTerm(ref.Variable, ref.Term) {
			return errors.Rule(r.ID, fmt.Sprintf("rule %s: unknown input term %s", r.ID, ref))
		}
	}
	if !schema.HasOutputTerm(r.Then.Variable, r.Then.Term) {
		return errors.Rule(r.ID, fmt.Sprintf("rule %s: unknown output term %s", r.ID, r.Then))
	}
	return nil
}

// Len returns the number of rules
func (b *Base) Len() int {
	return len(b.rules)
}

// Each calls fn for every rule in order
func (b *Base) Each(fn func(Rule)) {
	for _, r := range b.rules {
		fn(r)
	}
}

// Rules returns a copy of the rules in order
func (b *Base) Rules() []Rule {
	out := make([]Rule, len(b.rules))
	for i, r := range b.rules {
		out[i] = clone(r)
	}
	return out
}

func clone(r Rule) Rule {
	r.When = cloneExpr(r.When)
	return r
}

func cloneExpr(e Expr) Expr {
	if len(e.Operands) == 0 {
		e.Operands = nil
		return e
	}
	ops := make([]Expr, len(e.Operands))
	for i, op := range e.Operands {
		ops[i] = cloneExpr(op)
	}
	e.Operands = ops
	return e
}
