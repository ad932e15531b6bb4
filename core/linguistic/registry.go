// Package linguistic binds each input and output quantity to its named terms
// and their membership functions.
//
// A Registry is built once, validated at construction and read-only afterwards.
// Declaration order of variables and terms is preserved; the diagnosis selector
// relies on the declared order of the output variables to break ties.
package linguistic

import (
	"fmt"

	"netdiag/core/membership"
	"netdiag/internal/errors"
)

// Term is one named fuzzy set of a variable
type Term struct {
	// Name is the linguistic label, e.g. "debil"
	Name string `json:"name" yaml:"name"`

	// Function is the membership function of the term
	Function membership.Function `json:"function" yaml:"function"`
}

// Variable is a named quantity decomposed into overlapping terms
type Variable struct {
	// Name is the identifier used by rules
	Name string `json:"name" yaml:"name"`

	// Label is the human readable name
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Unit of the crisp value, e.g. "%" or "Mbps"
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Min and Max are the nominal range of the crisp value
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`

	// Terms in declaration order
	Terms []Term `json:"terms" yaml:"terms"`
}

// Term returns the named term
func (v Variable) Term(name string) (Term, bool) {
	for _, t := range v.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return Term{}, false
}

// TermNames returns the term names in declaration order
func (v Variable) TermNames() []string {
	names := make([]string, len(v.Terms))
	for i, t := range v.Terms {
		names[i] = t.Name
	}
	return names
}

func (v Variable) validate() error {
	if v.Name == "" {
		return errors.Config("variable name is required")
	}
	if v.Max < v.Min {
		return errors.Config(fmt.Sprintf("variable %s: max %v is below min %v", v.Name, v.Max, v.Min))
	}
	if len(v.Terms) == 0 {
		return errors.Config(fmt.Sprintf("variable %s declares no terms", v.Name))
	}

	seen := make(map[string]bool, len(v.Terms))
	for _, t := range v.Terms {
		if t.Name == "" {
			return errors.Config(fmt.Sprintf("variable %s has a term without a name", v.Name))
		}
		if seen[t.Name] {
			return errors.Config(fmt.Sprintf("variable %s declares term %s twice", v.Name, t.Name))
		}
		seen[t.Name] = true

		if err := t.Function.Validate(); err != nil {
			return errors.Wrapf(errors.TypeMembership, err, "variable %s term %s", v.Name, t.Name)
		}
	}
	return nil
}

// Registry holds the input and output variables of the system
type Registry struct {
	inputs  []Variable
	outputs []Variable
	byName  map[string]*Variable
	isInput map[string]bool
}

// NewRegistry validates the variables and builds a registry.
// Variable names must be unique across inputs and outputs.
func NewRegistry(inputs, outputs []Variable) (*Registry, error) {
	if len(inputs) == 0 {
		return nil, errors.Config("registry needs at least one input variable")
	}
	if len(outputs) == 0 {
		return nil, errors.Config("registry needs at least one output variable")
	}

	r := &Registry{
		inputs:  cloneVariables(inputs),
		outputs: cloneVariables(outputs),
		byName:  make(map[string]*Variable, len(inputs)+len(outputs)),
		isInput: make(map[string]bool, len(inputs)),
	}

	for i := range r.inputs {
		if err := r.add(&r.inputs[i]); err != nil {
			return nil, err
		}
		r.isInput[r.inputs[i].Name] = true
	}
	for i := range r.outputs {
		if err := r.add(&r.outputs[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(v *Variable) error {
	if err := v.validate(); err != nil {
		return err
	}
	if _, dup := r.byName[v.Name]; dup {
		return errors.Config(fmt.Sprintf("variable %s declared twice", v.Name))
	}
	r.byName[v.Name] = v
	return nil
}

// Inputs returns the input variables in declaration order
func (r *Registry) Inputs() []Variable {
	return cloneVariables(r.inputs)
}

// Outputs returns the output variables in declaration order
func (r *Registry) Outputs() []Variable {
	return cloneVariables(r.outputs)
}

// OutputNames returns the output variable names in declaration order
func (r *Registry) OutputNames() []string {
	names := make([]string, len(r.outputs))
	for i, v := range r.outputs {
		names[i] = v.Name
	}
	return names
}

// Variable looks up an input or output variable by name
func (r *Registry) Variable(name string) (Variable, bool) {
	v, ok := r.byName[name]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}

// HasInputTerm reports whether name is an input variable declaring term
func (r *Registry) HasInputTerm(name, term string) bool {
	return r.isInput[name] && r.hasTerm(name, term)
}

// HasOutputTerm reports whether name is an output variable declaring term
func (r *Registry) HasOutputTerm(name, term string) bool {
	_, known := r.byName[name]
	return known && !r.isInput[name] && r.hasTerm(name, term)
}

func (r *Registry) hasTerm(name, term string) bool {
	v, ok := r.byName[name]
	if !ok {
		return false
	}
	_, ok = v.Term(term)
	return ok
}

// Label returns the display label of a variable, falling back to its name
func (r *Registry) Label(name string) string {
	if v, ok := r.byName[name]; ok && v.Label != "" {
		return v.Label
	}
	return name
}

func cloneVariables(vars []Variable) []Variable {
	out := make([]Variable, len(vars))
	for i, v := range vars {
		out[i] = v
		out[i].Terms = make([]Term, len(v.Terms))
		for j, t := range v.Terms {
			out[i].Terms[j] = Term{
				Name: t.Name,
				Function: membership.Function{
					Kind:   t.Function.Kind,
					Points: append([]float64(nil), t.Function.Points...),
				},
			}
		}
	}
	return out
}
