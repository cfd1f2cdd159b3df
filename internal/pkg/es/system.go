package es

import "math"

// System is the vendor neutral energy system: the aggregate of all
// component records, the evaluated timeframe and the system wide
// constraints. It is immutable after construction; Duplicate, Connect and
// FromComponents return new instances. The directed flow graph is derived
// from the bus port declarations on every call, never cached.
type System struct {
	UID               Uid
	Busses            []Bus
	CHPs              []CHP
	Connectors        []Connector
	Sinks             []Sink
	Sources           []Source
	Transformers      []Transformer
	Storages          []Storage
	Timeframe         Timeframe
	GlobalConstraints map[string]float64
}

// DefaultGlobalConstraints returns the unconstrained default, an unlimited
// emissions budget.
func DefaultGlobalConstraints() map[string]float64 {
	return map[string]float64{"emissions": math.Inf(1)}
}

// New assembles a system from a flat bag of component records.
func New(uid Uid, timeframe Timeframe, constraints map[string]float64, components ...Component) *System {
	return FromComponents(uid, components, timeframe, constraints)
}

// FromComponents partitions an arbitrary component collection into the
// typed collections and constructs the aggregate. It is the canonical
// rebuild-from-parts constructor used by Duplicate and Connect.
func FromComponents(uid Uid, components []Component, timeframe Timeframe, constraints map[string]float64) *System {
	if constraints == nil {
		constraints = DefaultGlobalConstraints()
	}
	sys := &System{UID: uid, Timeframe: timeframe, GlobalConstraints: constraints}
	for _, c := range components {
		switch t := c.(type) {
		case Bus:
			sys.Busses = append(sys.Busses, t)
		case CHP:
			sys.CHPs = append(sys.CHPs, t)
		case Connector:
			sys.Connectors = append(sys.Connectors, t)
		case Sink:
			sys.Sinks = append(sys.Sinks, t)
		case Source:
			sys.Sources = append(sys.Sources, t)
		case Transformer:
			sys.Transformers = append(sys.Transformers, t)
		case Storage:
			sys.Storages = append(sys.Storages, t)
		}
	}
	return sys
}

// Nodes returns every component in the fixed iteration order: busses, chps,
// sources, sinks, transformers, storages, connectors. The slice is rebuilt
// on each call.
func (sys *System) Nodes() []Component {
	nodes := make([]Component, 0, sys.nodeCount())
	for _, b := range sys.Busses {
		nodes = append(nodes, b)
	}
	for _, c := range sys.CHPs {
		nodes = append(nodes, c)
	}
	for _, s := range sys.Sources {
		nodes = append(nodes, s)
	}
	for _, s := range sys.Sinks {
		nodes = append(nodes, s)
	}
	for _, t := range sys.Transformers {
		nodes = append(nodes, t)
	}
	for _, s := range sys.Storages {
		nodes = append(nodes, s)
	}
	for _, c := range sys.Connectors {
		nodes = append(nodes, c)
	}
	return nodes
}

func (sys *System) nodeCount() int {
	return len(sys.Busses) + len(sys.CHPs) + len(sys.Sources) + len(sys.Sinks) +
		len(sys.Transformers) + len(sys.Storages) + len(sys.Connectors)
}

// nodeByName scans all nodes for the one whose uid name matches. Linear on
// purpose: the tool targets tens to low hundreds of components, and the
// permissive no-match case must stay silent.
func (sys *System) nodeByName(name string) (Component, bool) {
	for _, n := range sys.Nodes() {
		if n.UID().Name == name {
			return n, true
		}
	}
	return nil, false
}

// Edges derives the directed flow arcs from the bus port declarations. For
// every "component.interface" string in a bus's Inputs the named component
// feeds the bus; for Outputs the bus feeds the named component. Port
// strings that resolve to no component are skipped without error.
// Connectors contribute arcs to and from both coupled busses.
func (sys *System) Edges() []Edge {
	var edges []Edge
	for _, b := range sys.Busses {
		for _, port := range b.Inputs {
			name, _ := SplitPort(port)
			if producer, ok := sys.nodeByName(name); ok {
				edges = append(edges, Edge{Source: producer.UID().String(), Target: b.ID.String()})
			}
		}
		for _, port := range b.Outputs {
			name, _ := SplitPort(port)
			if consumer, ok := sys.nodeByName(name); ok {
				edges = append(edges, Edge{Source: b.ID.String(), Target: consumer.UID().String()})
			}
		}
	}
	for _, c := range sys.Connectors {
		for _, bus := range c.ConnectorInputs() {
			edges = append(edges, Edge{Source: bus, Target: c.ID.String()})
		}
		for _, bus := range c.ConnectorOutputs() {
			edges = append(edges, Edge{Source: c.ID.String(), Target: bus})
		}
	}
	return edges
}

// EdgeCarriers repeats the edge derivation and records, per edge, the
// commodity that routed it: the interface name of the matched port string,
// or the coupled bus's carrier for connector arcs.
func (sys *System) EdgeCarriers() map[Edge]string {
	carriers := make(map[Edge]string)
	for _, b := range sys.Busses {
		for _, port := range b.Inputs {
			name, iface := SplitPort(port)
			if producer, ok := sys.nodeByName(name); ok {
				carriers[Edge{Source: producer.UID().String(), Target: b.ID.String()}] = iface
			}
		}
		for _, port := range b.Outputs {
			name, iface := SplitPort(port)
			if consumer, ok := sys.nodeByName(name); ok {
				carriers[Edge{Source: b.ID.String(), Target: consumer.UID().String()}] = iface
			}
		}
	}
	for _, c := range sys.Connectors {
		for _, bus := range c.ConnectorInputs() {
			carriers[Edge{Source: bus, Target: c.ID.String()}] = sys.busCarrier(bus)
		}
		for _, bus := range c.ConnectorOutputs() {
			carriers[Edge{Source: c.ID.String(), Target: bus}] = sys.busCarrier(bus)
		}
	}
	return carriers
}

func (sys *System) busCarrier(name string) string {
	if n, ok := sys.nodeByName(name); ok {
		return n.UID().Carrier
	}
	return ""
}

// Duplicate returns a renamed copy of the whole system: every node is
// duplicated with the given affixes and the aggregate is rebuilt, so all
// internal port references stay consistent and the edge set keeps its
// cardinality.
func (sys *System) Duplicate(prefix, separator, suffix string) *System {
	nodes := sys.Nodes()
	duplicated := make([]Component, len(nodes))
	for i, n := range nodes {
		duplicated[i] = n.Duplicate(prefix, separator, suffix)
	}
	return FromComponents(sys.UID, duplicated, sys.Timeframe, sys.GlobalConstraints)
}

// Connect merges other into sys through a newly synthesized connector
// joining connectingBusses[0] (a bus of sys) and connectingBusses[1] (a bus
// of other). The named bus of other is replaced by the connector in the
// merged node set. No match is not an error; an unmatched name simply
// yields a system with a dangling connector, consistent with the
// permissive edge derivation.
func (sys *System) Connect(other *System, connectingBusses [2]string, connectionUID Uid) *System {
	connector := Connector{
		ID:         connectionUID,
		Interfaces: connectingBusses,
		Conversions: ConversionTable{
			{From: connectingBusses[0], To: connectingBusses[1], Rate: 1},
			{From: connectingBusses[1], To: connectingBusses[0], Rate: 1},
		},
	}

	merged := append(sys.Nodes(), connector)
	for _, n := range other.Nodes() {
		if n.UID().String() == connectingBusses[1] {
			if _, ok := n.(Bus); ok {
				continue
			}
		}
		merged = append(merged, n)
	}
	return FromComponents(sys.UID, merged, sys.Timeframe, sys.GlobalConstraints)
}
