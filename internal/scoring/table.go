package scoring

import "math"

// Condition reports whether a metric value falls inside a band.
type Condition func(v float64) bool

func Below(x float64) Condition        { return func(v float64) bool { return v < x } }
func Above(x float64) Condition        { return func(v float64) bool { return v > x } }
func Between(lo, hi float64) Condition { return func(v float64) bool { return v >= lo && v <= hi } }
func Otherwise() Condition             { return func(float64) bool { return true } }

type Band struct {
	When  Condition
	Delta float64
}

// Rule scores one metric: the first matching band applies, a value matching no band adds nothing.
type Rule struct {
	Metric string
	Bands  []Band
}

func (r Rule) delta(v float64) float64 {
	for _, b := range r.Bands {
		if b.When(v) {
			return b.Delta
		}
	}
	return 0
}

// Values holds the metric inputs of a table. A nil entry means the metric is unavailable.
type Values map[string]*float64

// Table is a base score plus additive, independent rules.
type Table struct {
	Base  float64
	Rules []Rule
}

// Score applies every rule whose metric is available, adds the extra deltas and clamps to [0,100].
func (t Table) Score(values Values, extra ...float64) float64 {
	score := t.Base
	for _, rule := range t.Rules {
		v, ok := values[rule.Metric]
		if !ok || v == nil {
			continue
		}
		score += rule.delta(*v)
	}
	for _, d := range extra {
		score += d
	}
	return Clamp(score, 0, 100)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
