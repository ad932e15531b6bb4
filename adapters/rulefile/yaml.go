package rulefile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"netdiag/core/rules"
	"netdiag/internal/errors"
)

// A rule file in YAML:
//
//	rules:
//	  - id: R13
//	    description: "R13: IF packet loss IS alta AND connection IS intermitente THEN ISP failure IS probable"
//	    when:
//	      all:
//	        - is: packet_loss.alta
//	        - is: connection.intermitente
//	    then: isp_failure.probable

type yamlFile struct {
	Rules []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description,omitempty"`
	When        yamlExpr `yaml:"when"`
	Then        string   `yaml:"then"`
}

// yamlExpr sets exactly one of its fields
type yamlExpr struct {
	Is  string     `yaml:"is,omitempty"`
	All []yamlExpr `yaml:"all,omitempty"`
	Any []yamlExpr `yaml:"any,omitempty"`
	Not *yamlExpr  `yaml:"not,omitempty"`
}

// ParseYAML decodes a YAML rule set. Unknown keys are rejected.
func ParseYAML(src []byte, filename string) ([]rules.Rule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Parsing("invalid YAML rule file", err).WithContext("file", filename)
	}

	out := make([]rules.Rule, 0, len(f.Rules))
	for i, yr := range f.Rules {
		r, err := yr.rule()
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("rule #%d (%s)", i+1, yr.ID), err).WithContext("file", filename)
		}
		out = append(out, r)
	}
	return out, nil
}

func (yr yamlRule) rule() (rules.Rule, error) {
	then, err := parseRef(yr.Then)
	if err != nil {
		return rules.Rule{}, fmt.Errorf("then: %w", err)
	}
	when, err := yr.When.expr()
	if err != nil {
		return rules.Rule{}, err
	}
	return rules.Rule{ID: yr.ID, Description: yr.Description, When: when, Then: then}, nil
}

func (y yamlExpr) expr() (rules.Expr, error) {
	set := 0
	if y.Is != "" {
		set++
	}
	if y.All != nil {
		set++
	}
	if y.Any != nil {
		set++
	}
	if y.Not != nil {
		set++
	}
	if set != 1 {
		return rules.Expr{}, fmt.Errorf("a condition needs exactly one of is, all, any or not")
	}

	switch {
	case y.Is != "":
		ref, err := parseRef(y.Is)
		if err != nil {
			return rules.Expr{}, fmt.Errorf("is: %w", err)
		}
		return rules.Is(ref.Variable, ref.Term), nil
	case y.Not != nil:
		inner, err := y.Not.expr()
		if err != nil {
			return rules.Expr{}, err
		}
		return rules.Not(inner), nil
	}

	op, list := rules.OpAll, y.All
	if y.Any != nil {
		op, list = rules.OpAny, y.Any
	}
	ops := make([]rules.Expr, 0, len(list))
	for _, item := range list {
		e, err := item.expr()
		if err != nil {
			return rules.Expr{}, err
		}
		ops = append(ops, e)
	}
	return rules.Expr{Op: op, Operands: ops}, nil
}

// WriteYAML encodes a rule set as YAML
func WriteYAML(rs []rules.Rule) ([]byte, error) {
	f := yamlFile{Rules: make([]yamlRule, len(rs))}
	for i, r := range rs {
		f.Rules[i] = yamlRule{
			ID:          r.ID,
			Description: r.Description,
			When:        toYAML(r.When),
			Then:        r.Then.String(),
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAML(e rules.Expr) yamlExpr {
	switch e.Op {
	case rules.OpIs:
		return yamlExpr{Is: rules.Ref{Variable: e.Variable, Term: e.Term}.String()}
	case rules.OpNot:
		if len(e.Operands) == 1 {
			inner := toYAML(e.Operands[0])
			return yamlExpr{Not: &inner}
		}
	}

	list := make([]yamlExpr, len(e.Operands))
	for i, op := range e.Operands {
		list[i] = toYAML(op)
	}
	if e.Op == rules.OpAny {
		return yamlExpr{Any: list}
	}
	return yamlExpr{All: list}
}
