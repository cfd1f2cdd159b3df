package es

// Transformer converts between commodities, for example a gas fired
// generator. Conversions states the efficiency of each declared
// input->output interface pairing.
type Transformer struct {
	ID          Uid
	Inputs      []string
	Outputs     []string
	Conversions ConversionTable
	FlowParameters
}

// UID returns the transformer identity.
func (t Transformer) UID() Uid { return t.ID }

// Kind returns "transformer".
func (t Transformer) Kind() string { return "transformer" }

// Attributes maps the declared fields for serialization.
func (t Transformer) Attributes() map[string]interface{} {
	attrs := map[string]interface{}{
		"uid":         uidAttributes(t.ID),
		"inputs":      append([]string{}, t.Inputs...),
		"outputs":     append([]string{}, t.Outputs...),
		"conversions": conversionAttributes(t.Conversions),
	}
	return mergeAttributes(attrs, t.FlowParameters.attributes())
}

// Duplicate rewrites the transformer name.
func (t Transformer) Duplicate(prefix, separator, suffix string) Component {
	out := t
	out.ID.Name = rename(t.ID.Name, prefix, separator, suffix)
	return out
}

func (Transformer) isComponent() {}
