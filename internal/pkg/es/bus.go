package es

// Bus is a commodity balancing node. Its Inputs and Outputs are fully
// qualified port strings of the form "<component-name>.<interface-name>";
// they are the sole mechanism by which the system's edges are derived.
// A port string that names no existing component produces no edge and no
// error.
type Bus struct {
	ID      Uid
	Inputs  []string
	Outputs []string
}

// UID returns the bus identity.
func (b Bus) UID() Uid { return b.ID }

// Kind returns "bus".
func (b Bus) Kind() string { return "bus" }

// Attributes maps the declared fields for serialization.
func (b Bus) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"uid":     uidAttributes(b.ID),
		"inputs":  append([]string{}, b.Inputs...),
		"outputs": append([]string{}, b.Outputs...),
	}
}

// Duplicate rewrites the bus name and the component half of every port
// string, so that a duplicated system keeps its edges.
func (b Bus) Duplicate(prefix, separator, suffix string) Component {
	out := b
	out.ID.Name = rename(b.ID.Name, prefix, separator, suffix)
	out.Inputs = renamePorts(b.Inputs, prefix, separator, suffix)
	out.Outputs = renamePorts(b.Outputs, prefix, separator, suffix)
	return out
}

func renamePorts(ports []string, prefix, separator, suffix string) []string {
	out := make([]string, len(ports))
	for i, p := range ports {
		component, iface := SplitPort(p)
		out[i] = JoinPort(rename(component, prefix, separator, suffix), iface)
	}
	return out
}

func (Bus) isComponent() {}
