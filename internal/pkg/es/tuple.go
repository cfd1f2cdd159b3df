package es

import "math"

// MinMax is a closed bound on a flow rate, an accumulated amount or an
// expansion range. A Max of +Inf means unconstrained. Bounds are not
// validated on construction; Min <= Max is the caller's responsibility.
type MinMax struct {
	Min float64
	Max float64
}

// Unbounded returns the [0, +Inf) default bound.
func Unbounded() MinMax {
	return MinMax{Min: 0, Max: math.Inf(1)}
}

// PositiveNegative is an asymmetric bound or cost pair, used for flow
// gradients and idle/self-discharge changes.
type PositiveNegative struct {
	Positive float64
	Negative float64
}

// NoGradient returns the unconstrained gradient pair.
func NoGradient() PositiveNegative {
	return PositiveNegative{Positive: math.Inf(1), Negative: math.Inf(1)}
}

// InOut pairs the efficiency factors of a two-directional flow.
type InOut struct {
	Inflow  float64
	Outflow float64
}

// SeriesBounds is a pointwise min/max series overriding a scalar flow rate
// bound per timestep. Both series are expected to have the timeframe's
// length.
type SeriesBounds struct {
	Min []float64
	Max []float64
}

// Conversion states the efficiency of one input->output interface pairing.
// Series, when set, is a per-timestep efficiency; translation pipelines that
// need a scalar average it (and warn).
type Conversion struct {
	From   string
	To     string
	Rate   float64
	Series []float64
}

// ConversionTable is an ordered set of conversions. Order is load bearing:
// the pipeline reduction rule is first-writer-wins, so the table is a slice
// rather than a map.
type ConversionTable []Conversion

// Rate returns the conversion factor declared for the from->to pairing.
func (t ConversionTable) Rate(from, to string) (float64, bool) {
	for _, c := range t {
		if c.From == from && c.To == to {
			return c.Rate, true
		}
	}
	return 0, false
}
