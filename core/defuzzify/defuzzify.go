// Package defuzzify turns the aggregated certainty degrees of one output
// variable into a crisp score in [0,100].
package defuzzify

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"netdiag/core/determinism"
	"netdiag/core/linguistic"
	"netdiag/internal/errors"
)

// Strategy names
const (
	NameDiscrete   = "discrete"
	NameContinuous = "continuous"
)

// DefaultSamples is the number of steps used by the continuous centroid
const DefaultSamples = 100

// Strategy reduces term degrees to a single score.
// Implementations must be deterministic and return 0 when every degree is 0.
type Strategy interface {
	Name() string
	Defuzzify(degrees map[string]float64) float64
}

// Discrete is the weighted mean of a representative value per term.
// A single active term yields exactly its value.
type Discrete struct {
	values map[string]float64
}

// NewDiscrete returns the discrete centroid with improbable=25, possible=50
// and probable=75.
func NewDiscrete() *Discrete {
	return &Discrete{values: map[string]float64{
		linguistic.Improbable: 25,
		linguistic.Possible:   50,
		linguistic.Probable:   75,
	}}
}

// Name implements Strategy
func (d *Discrete) Name() string { return NameDiscrete }

// Defuzzify implements Strategy
func (d *Discrete) Defuzzify(degrees map[string]float64) float64 {
	terms := determinism.SortedKeys(degrees)

	var total float64
	for _, t := range terms {
		if _, ok := d.values[t]; ok && degrees[t] > 0 {
			total += degrees[t]
		}
	}
	if total == 0 {
		return 0
	}

	var score float64
	for _, t := range terms {
		v, ok := d.values[t]
		if !ok || !(degrees[t] > 0) {
			continue
		}
		score += v * (degrees[t] / total)
	}
	return score
}

// Range is the slice of the score axis a term covers
type Range struct {
	Lo float64
	Hi float64
}

// Continuous is a sampled centroid: every active term contributes samples
// uniformly spaced over its range, weighted by the term degree.
type Continuous struct {
	ranges  map[string]Range
	samples int
}

// NewContinuous returns the sampled centroid over improbable=[0,33],
// possible=[33,67] and probable=[67,100].
func NewContinuous(samples int) (*Continuous, error) {
	return NewContinuousRanges(map[string]Range{
		linguistic.Improbable: {Lo: 0, Hi: 33},
		linguistic.Possible:   {Lo: 33, Hi: 67},
		linguistic.Probable:   {Lo: 67, Hi: 100},
	}, samples)
}

// NewContinuousRanges builds a sampled centroid over custom term ranges
func NewContinuousRanges(ranges map[string]Range, samples int) (*Continuous, error) {
	if samples < 1 {
		return nil, errors.Config(fmt.Sprintf("continuous defuzzifier needs at least 1 sample step, got %d", samples))
	}
	copied := make(map[string]Range, len(ranges))
	for term, r := range ranges {
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || r.Lo < 0 || r.Hi > 100 || r.Lo > r.Hi {
			return nil, errors.Config(fmt.Sprintf("range of term %q must lie within [0,100], got [%v,%v]", term, r.Lo, r.Hi))
		}
		copied[term] = r
	}
	return &Continuous{ranges: copied, samples: samples}, nil
}

// Name implements Strategy
func (c *Continuous) Name() string { return NameContinuous }

// Defuzzify implements Strategy. Each active range contributes its sample
// mean weighted by degree times sample count, which equals the sample-wise
// sum of x*degree over the sum of degrees.
func (c *Continuous) Defuzzify(degrees map[string]float64) float64 {
	xs := make([]float64, c.samples+1)

	type part struct{ mean, weight float64 }
	var parts []part
	var den float64
	for _, t := range determinism.SortedKeys(degrees) {
		r, ok := c.ranges[t]
		d := degrees[t]
		if !ok || !(d > 0) {
			continue
		}
		floats.Span(xs, r.Lo, r.Hi)
		w := d * float64(len(xs))
		parts = append(parts, part{mean: floats.Sum(xs) / float64(len(xs)), weight: w})
		den += w
	}
	if den == 0 {
		return 0
	}

	var score float64
	for _, p := range parts {
		score += p.mean * (p.weight / den)
	}
	return score
}

// ByName returns the strategy registered under name
func ByName(name string, samples int) (Strategy, error) {
	switch name {
	case NameDiscrete, "":
		return NewDiscrete(), nil
	case NameContinuous:
		if samples == 0 {
			samples = DefaultSamples
		}
		c, err := NewContinuous(samples)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.Config(fmt.Sprintf("unknown defuzzifier %q (want %s or %s)", name, NameDiscrete, NameContinuous)).
			WithContext("defuzzifier", name)
	}
}

// Names lists the available strategies
func Names() []string {
	return []string{NameDiscrete, NameContinuous}
}
