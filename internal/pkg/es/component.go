package es

// Component is the closed set of energy system participants. Records are
// immutable by convention: no method mutates the receiver, Duplicate
// returns a rewritten copy.
type Component interface {
	// UID returns the component's structural identity.
	UID() Uid
	// Kind returns the component archetype ("bus", "source", ...).
	Kind() string
	// Attributes maps every declared field name to its value, for
	// serialization and for introspection during translation.
	Attributes() map[string]interface{}
	// Duplicate returns a copy with uid.Name (and any internal name
	// references) rewritten to prefix+separator+name+separator+suffix.
	Duplicate(prefix, separator, suffix string) Component

	isComponent()
}

// FlowParameters carries the per-interface parameter maps shared by all
// flow-bearing components. Maps are keyed by interface (commodity) name and
// may be nil; accessors substitute the unconstrained default.
type FlowParameters struct {
	FlowRates          map[string]MinMax
	FlowCosts          map[string]float64
	FlowEmissions      map[string]float64
	FlowGradients      map[string]PositiveNegative
	GradientCosts      map[string]PositiveNegative
	AccumulatedAmounts map[string]MinMax
	Expandable         map[string]bool
	ExpansionCosts     map[string]float64
	ExpansionLimits    map[string]MinMax
	Timeseries         map[string]SeriesBounds
}

// Rate returns the flow rate bound declared for iface, or [0, +Inf).
func (p FlowParameters) Rate(iface string) MinMax {
	if r, ok := p.FlowRates[iface]; ok {
		return r
	}
	return Unbounded()
}

// Accumulated returns the accumulated amount bound for iface, or [0, +Inf).
func (p FlowParameters) Accumulated(iface string) MinMax {
	if a, ok := p.AccumulatedAmounts[iface]; ok {
		return a
	}
	return Unbounded()
}

// Gradient returns the ramp bound pair for iface, or the unconstrained pair.
func (p FlowParameters) Gradient(iface string) PositiveNegative {
	if g, ok := p.FlowGradients[iface]; ok {
		return g
	}
	return NoGradient()
}

// GradientCost returns the ramp cost pair for iface, defaulting to zero.
func (p FlowParameters) GradientCost(iface string) PositiveNegative {
	return p.GradientCosts[iface]
}

// ExpansionLimit returns the absolute expansion bound for iface, or
// [0, +Inf).
func (p FlowParameters) ExpansionLimit(iface string) MinMax {
	if l, ok := p.ExpansionLimits[iface]; ok {
		return l
	}
	return Unbounded()
}

// Series returns the pointwise bound series for iface, if declared.
func (p FlowParameters) Series(iface string) (SeriesBounds, bool) {
	s, ok := p.Timeseries[iface]
	return s, ok
}

func uidAttributes(u Uid) map[string]interface{} {
	return map[string]interface{}{
		"name":      u.Name,
		"latitude":  u.Latitude,
		"longitude": u.Longitude,
		"region":    u.Region,
		"sector":    u.Sector,
		"carrier":   u.Carrier,
		"component": u.Component,
		"node_type": u.NodeType,
	}
}

func minmaxAttributes(m map[string]MinMax) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = map[string]interface{}{"min": v.Min, "max": v.Max}
	}
	return out
}

func posnegAttributes(m map[string]PositiveNegative) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = map[string]interface{}{"positive": v.Positive, "negative": v.Negative}
	}
	return out
}

func floatAttributes(m map[string]float64) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func boolAttributes(m map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func seriesAttributes(m map[string]SeriesBounds) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = map[string]interface{}{"min": v.Min, "max": v.Max}
	}
	return out
}

func conversionAttributes(t ConversionTable) []interface{} {
	out := make([]interface{}, 0, len(t))
	for _, c := range t {
		entry := map[string]interface{}{"from": c.From, "to": c.To, "rate": c.Rate}
		if c.Series != nil {
			entry["series"] = c.Series
		}
		out = append(out, entry)
	}
	return out
}

func (p FlowParameters) attributes() map[string]interface{} {
	return map[string]interface{}{
		"flow_rates":          minmaxAttributes(p.FlowRates),
		"flow_costs":          floatAttributes(p.FlowCosts),
		"flow_emissions":      floatAttributes(p.FlowEmissions),
		"flow_gradients":      posnegAttributes(p.FlowGradients),
		"gradient_costs":      posnegAttributes(p.GradientCosts),
		"accumulated_amounts": minmaxAttributes(p.AccumulatedAmounts),
		"expandable":          boolAttributes(p.Expandable),
		"expansion_costs":     floatAttributes(p.ExpansionCosts),
		"expansion_limits":    minmaxAttributes(p.ExpansionLimits),
		"timeseries":          seriesAttributes(p.Timeseries),
	}
}

func mergeAttributes(dst, src map[string]interface{}) map[string]interface{} {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
