package es2omf

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

// buildFlow translates the per-interface parameters of one component into a
// native flow. The target expresses rate bounds as fractions of a nominal
// value, so a finite flow rate maximum becomes the nominal value and all
// bounds are normalized against it; an infinite maximum falls back to the
// timeseries' own maximum, or to the unbounded sentinel (nil nominal).
func (b *builder) buildFlow(component, iface string, p es.FlowParameters) *omf.Flow {
	n := b.sys.Timeframe.Len()
	rates := p.Rate(iface)
	series, hasSeries := p.Series(iface)

	flow := &omf.Flow{
		VariableCosts: p.FlowCosts[iface],
		Emissions:     p.FlowEmissions[iface],
	}

	var nominal *float64
	switch {
	case !math.IsInf(rates.Max, 1):
		v := rates.Max
		nominal = &v
	case hasSeries && len(series.Max) > 0:
		v := floats.Max(series.Max)
		nominal = &v
	}
	flow.Nominal = nominal

	if nominal != nil {
		if *nominal > 0 {
			if hasSeries {
				if seriesEqual(series.Min, series.Max) {
					flow.Fix = scaled(series.Max, 1 / *nominal)
				} else {
					flow.Min = scaled(series.Min, 1 / *nominal)
					flow.Max = scaled(series.Max, 1 / *nominal)
				}
			} else {
				flow.Min = repeated(rates.Min / *nominal, n)
				flow.Max = repeated(1, n)
			}
		} else {
			b.warn(component, iface, "flow rate maximum is zero; bounds substituted with zero")
			flow.Min = repeated(0, n)
			flow.Max = repeated(0, n)
		}

		// Accumulated amounts become summed bounds, again as fractions of
		// the nominal value; a zero minimum means no constraint.
		if *nominal > 0 {
			accumulated := p.Accumulated(iface)
			if accumulated.Min > 0 {
				v := accumulated.Min / *nominal
				flow.SummedMin = &v
			}
			if !math.IsInf(accumulated.Max, 1) {
				v := accumulated.Max / *nominal
				flow.SummedMax = &v
			}
		}
	}

	gradient := p.Gradient(iface)
	gradientCosts := p.GradientCost(iface)
	if !math.IsInf(gradient.Positive, 1) {
		flow.PositiveGradient = &omf.Gradient{UB: gradient.Positive, Costs: gradientCosts.Positive}
	}
	if !math.IsInf(gradient.Negative, 1) {
		flow.NegativeGradient = &omf.Gradient{UB: gradient.Negative, Costs: gradientCosts.Negative}
	}

	if p.Expandable[iface] {
		flow.Investment = b.buildInvestment(component, iface,
			existingOf(nominal), p.ExpansionLimit(iface), p.ExpansionCosts[iface])
		// Investment replaces the fixed nominal value.
		flow.Nominal = nil
	}

	return flow
}

// buildInvestment re-bases the absolute expansion limits of the abstract
// model onto the target's incremental convention: minimum and maximum
// additional capacity relative to the existing value. Limits below the
// installed capacity are a user-data inconsistency; they are clamped to
// zero additional capacity with a warning, never an error.
func (b *builder) buildInvestment(component, iface string, existing float64, limits es.MinMax, costs float64) *omf.Investment {
	minimum := limits.Min - existing
	if minimum < 0 {
		if limits.Min > 0 {
			b.warn(component, iface,
				"expansion minimum %v below installed capacity %v; clamped to installed capacity", limits.Min, existing)
		}
		minimum = 0
	}

	maximum := math.Inf(1)
	if !math.IsInf(limits.Max, 1) {
		maximum = limits.Max - existing
		if maximum < 0 {
			b.warn(component, iface,
				"expansion maximum %v below installed capacity %v; clamped to installed capacity", limits.Max, existing)
			maximum = 0
		}
	}

	return &omf.Investment{
		Existing: existing,
		Minimum:  minimum,
		Maximum:  maximum,
		EpCosts:  costs,
	}
}

func existingOf(nominal *float64) float64 {
	if nominal == nil {
		return 0
	}
	return *nominal
}

func repeated(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func scaled(series []float64, factor float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * factor
	}
	return out
}

func seriesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
