package types

// DiagnosisResult is the outcome of one diagnosis.
// Callers must check Error before trusting the other fields.
type DiagnosisResult struct {
	// Scores maps every output variable to its crisp score in [0,100]
	Scores map[string]float64 `json:"scores"`

	// Diagnosis is the output variable with the highest score
	Diagnosis string `json:"diagnosis"`

	// Label is the human readable name of Diagnosis
	Label string `json:"label,omitempty"`

	// Score is the score of Diagnosis
	Score float64 `json:"score"`

	// ActivatedRules lists the rules that fired, in rule-base order
	ActivatedRules []ActivatedRule `json:"activated_rules"`

	// Recommendations are the advice lines for Diagnosis
	Recommendations []string `json:"recommendations"`

	// Error is set when the diagnosis could not be computed
	Error string `json:"error,omitempty"`
}

// Failed reports whether the result carries an error
func (r *DiagnosisResult) Failed() bool {
	return r.Error != ""
}
