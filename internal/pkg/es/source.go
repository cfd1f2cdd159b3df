package es

// Source produces one or more commodities. Each entry of Outputs is an
// interface (commodity) name; the per-interface parameter maps are keyed by
// those names.
type Source struct {
	ID      Uid
	Outputs []string
	FlowParameters
}

// UID returns the source identity.
func (s Source) UID() Uid { return s.ID }

// Kind returns "source".
func (s Source) Kind() string { return "source" }

// Attributes maps the declared fields for serialization.
func (s Source) Attributes() map[string]interface{} {
	attrs := map[string]interface{}{
		"uid":     uidAttributes(s.ID),
		"outputs": append([]string{}, s.Outputs...),
	}
	return mergeAttributes(attrs, s.FlowParameters.attributes())
}

// Duplicate rewrites the source name.
func (s Source) Duplicate(prefix, separator, suffix string) Component {
	out := s
	out.ID.Name = rename(s.ID.Name, prefix, separator, suffix)
	return out
}

func (Source) isComponent() {}
