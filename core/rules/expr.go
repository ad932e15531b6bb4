package rules

import (
	"fmt"
	"math"
	"strings"
)

// Op is the kind of an expression node
type Op string

const (
	// OpIs reads the degree of one input term
	OpIs Op = "is"

	// OpAll is fuzzy AND: the minimum of its operands
	OpAll Op = "all"

	// OpAny is fuzzy OR: the maximum of its operands
	OpAny Op = "any"

	// OpNot is fuzzy NOT: 1 minus its single operand
	OpNot Op = "not"
)

// Expr is a rule antecedent: a tree of term lookups combined by all/any/not.
// It is plain data and can be validated and serialized.
type Expr struct {
	Op       Op     `json:"op" yaml:"op"`
	Variable string `json:"variable,omitempty" yaml:"variable,omitempty"`
	Term     string `json:"term,omitempty" yaml:"term,omitempty"`
	Operands []Expr `json:"operands,omitempty" yaml:"operands,omitempty"`
}

// Is reads the degree of term in the input variable
func Is(variable, term string) Expr {
	return Expr{Op: OpIs, Variable: variable, Term: term}
}

// All is the conjunction (minimum) of its operands
func All(operands ...Expr) Expr {
	return Expr{Op: OpAll, Operands: operands}
}

// Any is the disjunction (maximum) of its operands
func Any(operands ...Expr) Expr {
	return Expr{Op: OpAny, Operands: operands}
}

// Not is the complement (1 - degree) of its operand
func Not(operand Expr) Expr {
	return Expr{Op: OpNot, Operands: []Expr{operand}}
}

// Source supplies input degrees during evaluation
type Source interface {
	Of(variable, term string) float64
}

// Eval computes the degree of the expression against src.
// Malformed nodes evaluate to 0; NewBase rejects them before they can run.
func (e Expr) Eval(src Source) float64 {
	switch e.Op {
	case OpIs:
		return src.Of(e.Variable, e.Term)
	case OpAll:
		if len(e.Operands) == 0 {
			return 0
		}
		out := 1.0
		for _, op := range e.Operands {
			out = math.Min(out, op.Eval(src))
		}
		return out
	case OpAny:
		out := 0.0
		for _, op := range e.Operands {
			out = math.Max(out, op.Eval(src))
		}
		return out
	case OpNot:
		if len(e.Operands) != 1 {
			return 0
		}
		return 1 - e.Operands[0].Eval(src)
	}
	return 0
}

// Refs returns every (variable, term) leaf in evaluation order
func (e Expr) Refs() []Ref {
	var refs []Ref
	e.walk(func(n Expr) {
		if n.Op == OpIs {
			refs = append(refs, Ref{Variable: n.Variable, Term: n.Term})
		}
	})
	return refs
}

func (e Expr) walk(fn func(Expr)) {
	fn(e)
	for _, op := range e.Operands {
		op.walk(fn)
	}
}

// check reports the first structural problem in the tree
func (e Expr) check() error {
	switch e.Op {
	case OpIs:
		if e.Variable == "" || e.Term == "" {
			return fmt.Errorf("is: variable and term are required")
		}
		if len(e.Operands) > 0 {
			return fmt.Errorf("is %s.%s: takes no operands", e.Variable, e.Term)
		}
		return nil
	case OpAll, OpAny:
		if len(e.Operands) == 0 {
			return fmt.Errorf("%s: needs at least one operand", e.Op)
		}
	case OpNot:
		if len(e.Operands) != 1 {
			return fmt.Errorf("not: needs exactly one operand, got %d", len(e.Operands))
		}
	case "":
		return fmt.Errorf("expression has no op")
	default:
		return fmt.Errorf("unknown op %q", e.Op)
	}

	if e.Variable != "" || e.Term != "" {
		return fmt.Errorf("%s: variable/term are only valid on is", e.Op)
	}
	for _, op := range e.Operands {
		if err := op.check(); err != nil {
			return err
		}
	}
	return nil
}

// String renders the expression in a compact prefix form
func (e Expr) String() string {
	switch e.Op {
	case OpIs:
		return e.Variable + " is " + e.Term
	case OpNot:
		if len(e.Operands) == 1 {
			return "not (" + e.Operands[0].String() + ")"
		}
	case OpAll, OpAny:
		parts := make([]string, len(e.Operands))
		for i, op := range e.Operands {
			parts[i] = op.String()
		}
		sep := " and "
		if e.Op == OpAny {
			sep = " or "
		}
		return "(" + strings.Join(parts, sep) + ")"
	}
	return string(e.Op) + "?"
}

// Ref names one term of one variable
type Ref struct {
	Variable string `json:"variable" yaml:"variable"`
	Term     string `json:"term" yaml:"term"`
}

// String renders the reference as variable.term
func (r Ref) String() string {
	return r.Variable + "." + r.Term
}
