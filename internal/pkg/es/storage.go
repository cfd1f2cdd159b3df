package es

// Storage holds a commodity over time. Capacity, InitialSOC and the idle
// changes are absolute quantities; translation pipelines normalize them to
// the target's fraction-of-capacity conventions.
type Storage struct {
	ID      Uid
	Inputs  []string
	Outputs []string

	// Capacity is the installed storage capacity. Zero is permitted and
	// handled downstream by falling back to uninitialized defaults.
	Capacity   float64
	InitialSOC float64
	// FinalSOC, when set and equal to InitialSOC, marks the storage as
	// cyclically balanced.
	FinalSOC *float64
	// IdleChanges states the per-timestep stored energy change independent
	// of charge/discharge activity; Negative is the self discharge.
	IdleChanges PositiveNegative
	// FlowEfficiencies pairs charge/discharge efficiencies per interface.
	FlowEfficiencies map[string]InOut
	// FixedExpansionRatios marks interfaces whose flow rate expands at a
	// fixed ratio to the capacity expansion.
	FixedExpansionRatios map[string]bool

	FlowParameters
}

// CapacityKey keys the capacity entry of the storage expansion maps; the
// interface-name keys cover the charge/discharge flows.
const CapacityKey = "capacity"

// UID returns the storage identity.
func (s Storage) UID() Uid { return s.ID }

// Kind returns "storage".
func (s Storage) Kind() string { return "storage" }

// Efficiency returns the in/out efficiency pair for iface, defaulting to
// lossless.
func (s Storage) Efficiency(iface string) InOut {
	if e, ok := s.FlowEfficiencies[iface]; ok {
		return e
	}
	return InOut{Inflow: 1, Outflow: 1}
}

// Attributes maps the declared fields for serialization.
func (s Storage) Attributes() map[string]interface{} {
	eff := make(map[string]interface{}, len(s.FlowEfficiencies))
	for k, v := range s.FlowEfficiencies {
		eff[k] = map[string]interface{}{"inflow": v.Inflow, "outflow": v.Outflow}
	}
	attrs := map[string]interface{}{
		"uid":         uidAttributes(s.ID),
		"inputs":      append([]string{}, s.Inputs...),
		"outputs":     append([]string{}, s.Outputs...),
		"capacity":    s.Capacity,
		"initial_soc": s.InitialSOC,
		"idle_changes": map[string]interface{}{
			"positive": s.IdleChanges.Positive,
			"negative": s.IdleChanges.Negative,
		},
		"flow_efficiencies":      eff,
		"fixed_expansion_ratios": boolAttributes(s.FixedExpansionRatios),
	}
	if s.FinalSOC != nil {
		attrs["final_soc"] = *s.FinalSOC
	} else {
		attrs["final_soc"] = nil
	}
	return mergeAttributes(attrs, s.FlowParameters.attributes())
}

// Duplicate rewrites the storage name.
func (s Storage) Duplicate(prefix, separator, suffix string) Component {
	out := s
	out.ID.Name = rename(s.ID.Name, prefix, separator, suffix)
	return out
}

func (Storage) isComponent() {}
