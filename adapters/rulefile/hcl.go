package rulefile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"netdiag/core/rules"
	"netdiag/internal/errors"
)

// A rule file in HCL:
//
//	rule "R13" {
//	  description = "R13: IF packet loss IS alta AND connection IS intermitente THEN ISP failure IS probable"
//	  then        = "isp_failure.probable"
//
//	  all {
//	    is "packet_loss" "alta" {}
//	    is "connection" "intermitente" {}
//	  }
//	}

var conditionBlocks = []hcl.BlockHeaderSchema{
	{Type: string(rules.OpIs), LabelNames: []string{"variable", "term"}},
	{Type: string(rules.OpAll)},
	{Type: string(rules.OpAny)},
	{Type: string(rules.OpNot)},
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rule", LabelNames: []string{"id"}},
	},
}

var ruleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "then", Required: true},
	},
	Blocks: conditionBlocks,
}

var conditionSchema = &hcl.BodySchema{
	Blocks: conditionBlocks,
}

// ParseHCL decodes an HCL rule set
func ParseHCL(src []byte, filename string) ([]rules.Rule, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	out := make([]rules.Rule, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		r, err := decodeRule(block)
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("rule %s", block.Labels[0]), err).
				WithContext("file", filename).
				WithContext("line", block.DefRange.Start.Line)
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeRule(block *hcl.Block) (rules.Rule, error) {
	r := rules.Rule{ID: block.Labels[0]}

	content, diags := block.Body.Content(ruleSchema)
	if diags.HasErrors() {
		return r, diags
	}

	if attr, ok := content.Attributes["description"]; ok {
		s, err := stringValue(attr)
		if err != nil {
			return r, err
		}
		r.Description = s
	}

	then, err := stringValue(content.Attributes["then"])
	if err != nil {
		return r, err
	}
	if r.Then, err = parseRef(then); err != nil {
		return r, fmt.Errorf("then: %w", err)
	}

	conds, err := decodeConditions(content.Blocks)
	if err != nil {
		return r, err
	}
	if len(conds) != 1 {
		return r, fmt.Errorf("needs exactly one condition block, got %d", len(conds))
	}
	r.When = conds[0]
	return r, nil
}

func decodeConditions(blocks hcl.Blocks) ([]rules.Expr, error) {
	var out []rules.Expr
	for _, b := range blocks {
		if b.Type == string(rules.OpIs) {
			if _, diags := b.Body.Content(&hcl.BodySchema{}); diags.HasErrors() {
				return nil, diags
			}
			out = append(out, rules.Is(b.Labels[0], b.Labels[1]))
			continue
		}

		content, diags := b.Body.Content(conditionSchema)
		if diags.HasErrors() {
			return nil, diags
		}
		ops, err := decodeConditions(content.Blocks)
		if err != nil {
			return nil, err
		}
		out = append(out, rules.Expr{Op: rules.Op(b.Type), Operands: ops})
	}
	return out, nil
}

// stringValue evaluates a literal string attribute. Expressions that need
// variables or functions are rejected.
func stringValue(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if !val.IsKnown() || val.IsNull() {
		return "", fmt.Errorf("%s: value must be a known string", attr.Name)
	}
	if !val.Type().Equals(cty.String) {
		return "", fmt.Errorf("%s: expected string, got %s", attr.Name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

func diagError(filename string, diags hcl.Diagnostics) error {
	e := errors.Parsing("invalid HCL rule file", diags).WithContext("file", filename)
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			e = e.WithContext("line", d.Subject.Start.Line)
			break
		}
	}
	return e
}

// WriteHCL encodes a rule set as HCL
func WriteHCL(rs []rules.Rule) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, r := range rs {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("rule", []string{r.ID})
		rb := block.Body()
		if r.Description != "" {
			rb.SetAttributeValue("description", cty.StringVal(r.Description))
		}
		rb.SetAttributeValue("then", cty.StringVal(r.Then.String()))
		rb.AppendNewline()
		writeCondition(rb, r.When)
	}
	return f.Bytes()
}

func writeCondition(body *hclwrite.Body, e rules.Expr) {
	if e.Op == rules.OpIs {
		body.AppendNewBlock(string(rules.OpIs), []string{e.Variable, e.Term})
		return
	}
	block := body.AppendNewBlock(string(e.Op), nil)
	for _, op := range e.Operands {
		writeCondition(block.Body(), op)
	}
}
