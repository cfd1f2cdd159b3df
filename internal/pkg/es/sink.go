package es

// Sink consumes one or more commodities, for example a demand or an export
// point.
type Sink struct {
	ID     Uid
	Inputs []string
	FlowParameters
}

// UID returns the sink identity.
func (s Sink) UID() Uid { return s.ID }

// Kind returns "sink".
func (s Sink) Kind() string { return "sink" }

// Attributes maps the declared fields for serialization.
func (s Sink) Attributes() map[string]interface{} {
	attrs := map[string]interface{}{
		"uid":    uidAttributes(s.ID),
		"inputs": append([]string{}, s.Inputs...),
	}
	return mergeAttributes(attrs, s.FlowParameters.attributes())
}

// Duplicate rewrites the sink name.
func (s Sink) Duplicate(prefix, separator, suffix string) Component {
	out := s
	out.ID.Name = rename(s.ID.Name, prefix, separator, suffix)
	return out
}

func (Sink) isComponent() {}
