package output

import (
	"encoding/json"
	"io"

	"netdiag/core/types"
)

// JSONFormatter renders reports as indented JSON with rounded scores
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	return encode(w, rounded(report))
}

// RenderAll implements Formatter
func (f *JSONFormatter) RenderAll(w io.Writer, reports []*Report) error {
	out := make([]*Report, len(reports))
	for i, r := range reports {
		out[i] = rounded(r)
	}
	return encode(w, out)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// rounded returns a copy of the report with scores and strengths rounded
func rounded(r *Report) *Report {
	cp := *r
	res := r.Result

	scores := make(map[string]float64, len(res.Scores))
	for k, v := range res.Scores {
		scores[k] = RoundFloat(v)
	}
	res.Scores = scores
	res.Score = RoundFloat(res.Score)

	activated := make([]types.ActivatedRule, len(res.ActivatedRules))
	for i, a := range res.ActivatedRules {
		a.Strength = RoundFloat(a.Strength)
		activated[i] = a
	}
	res.ActivatedRules = activated

	cp.Result = res
	return &cp
}
