package diagnosis

// Score is the crisp score of one output variable
type Score struct {
	Variable string
	Value    float64
}

// Select returns the highest score. Comparison is strict so the earliest
// entry wins an exact tie; callers pass scores in declaration order.
// ok is false when scores is empty.
func Select(scores []Score) (best Score, ok bool) {
	if len(scores) == 0 {
		return Score{}, false
	}
	best = scores[0]
	for _, s := range scores[1:] {
		if s.Value > best.Value {
			best = s
		}
	}
	return best, true
}
