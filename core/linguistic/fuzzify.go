package linguistic

// Degrees maps variable name -> term name -> degree in [0,1]
type Degrees map[string]map[string]float64

// Of returns the degree of term in variable, 0 when either is absent
func (d Degrees) Of(variable, term string) float64 {
	return d[variable][term]
}

// Fuzzify evaluates every term of v at x. Terms of one variable are not
// normalized and need not sum to 1.
func (v Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.Terms))
	for _, t := range v.Terms {
		out[t.Name] = t.Function.Degree(x)
	}
	return out
}

// Fuzzify evaluates every input variable at its crisp value. A variable
// without a value in values is fuzzified at 0.
func (r *Registry) Fuzzify(values map[string]float64) Degrees {
	d := make(Degrees, len(r.inputs))
	for _, v := range r.inputs {
		d[v.Name] = v.Fuzzify(values[v.Name])
	}
	return d
}
