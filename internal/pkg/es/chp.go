package es

// CHP is a combined heat and power plant: a transformer with one fuel input
// and coupled power/heat outputs, plus the optional extraction-turbine
// parameters. The optional parameter groups are not freely combinable;
// translation pipelines warn and skip unsupported combinations instead of
// failing.
type CHP struct {
	ID          Uid
	Inputs      []string
	Outputs     []string
	Conversions ConversionTable

	// ConversionsFullCondensation states the power efficiency when no heat
	// is extracted. Setting it marks the CHP as an extraction turbine and
	// requires PowerLossIndex.
	ConversionsFullCondensation ConversionTable
	// PowerLossIndex is the per-timestep power loss per unit of extracted
	// heat (extraction turbines only).
	PowerLossIndex []float64
	// MinCondenserLoad is the per-timestep minimal condenser throughput.
	MinCondenserLoad []float64
	// BackPressure, when set, fixes the power-to-heat ratio (back pressure
	// turbine). Mutually exclusive with the extraction parameters.
	BackPressure *bool

	FlowParameters
}

// UID returns the CHP identity.
func (c CHP) UID() Uid { return c.ID }

// Kind returns "chp".
func (c CHP) Kind() string { return "chp" }

// Attributes maps the declared fields for serialization.
func (c CHP) Attributes() map[string]interface{} {
	attrs := map[string]interface{}{
		"uid":                           uidAttributes(c.ID),
		"inputs":                        append([]string{}, c.Inputs...),
		"outputs":                       append([]string{}, c.Outputs...),
		"conversions":                   conversionAttributes(c.Conversions),
		"conversions_full_condensation": conversionAttributes(c.ConversionsFullCondensation),
		"power_loss_index":              c.PowerLossIndex,
		"min_condenser_load":            c.MinCondenserLoad,
	}
	if c.BackPressure != nil {
		attrs["back_pressure"] = *c.BackPressure
	} else {
		attrs["back_pressure"] = nil
	}
	return mergeAttributes(attrs, c.FlowParameters.attributes())
}

// Duplicate rewrites the CHP name.
func (c CHP) Duplicate(prefix, separator, suffix string) Component {
	out := c
	out.ID.Name = rename(c.ID.Name, prefix, separator, suffix)
	return out
}

func (CHP) isComponent() {}
