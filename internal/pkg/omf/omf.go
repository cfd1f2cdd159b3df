// Package omf is the native component vocabulary emitted by the
// representative translation pipeline. It mirrors the construction API of
// the target optimization library: busses, flows with fraction-of-nominal
// bounds, investment objects for expandable capacities, converters keyed by
// per-bus conversion factors, and generic storages with fraction-of-capacity
// levels and loss rates. The package holds data only; solving happens
// outside this repository.
package omf

import (
	"fmt"
	"time"
)

// Node is anything addable to an EnergySystem.
type Node interface {
	Label() string
}

// Bus balances one commodity in the native model.
type Bus struct {
	Name string
}

// Label returns the bus name.
func (b *Bus) Label() string { return b.Name }

// Gradient is a ramp bound with its associated cost.
type Gradient struct {
	UB    float64
	Costs float64
}

// Investment replaces a fixed nominal value with an expandable one. Minimum
// and Maximum are incremental relative to Existing, per the target's
// convention.
type Investment struct {
	Existing float64
	Minimum  float64
	Maximum  float64
	EpCosts  float64
}

// Flow parameterizes one arc between a component and a bus. Min, Max and
// Fix are fractions of Nominal per timestep; a nil Nominal (and nil
// Investment) means the flow is unbounded.
type Flow struct {
	Nominal          *float64
	Min              []float64
	Max              []float64
	Fix              []float64
	VariableCosts    float64
	Emissions        float64
	PositiveGradient *Gradient
	NegativeGradient *Gradient
	SummedMin        *float64
	SummedMax        *float64
	Investment       *Investment
}

// Source produces into one or more busses; Outputs is keyed by bus name.
type Source struct {
	Name    string
	Outputs map[string]*Flow
}

// Label returns the source name.
func (s *Source) Label() string { return s.Name }

// Sink consumes from one or more busses; Inputs is keyed by bus name.
type Sink struct {
	Name   string
	Inputs map[string]*Flow
}

// Label returns the sink name.
func (s *Sink) Label() string { return s.Name }

// Converter transforms between busses. ConversionFactors is keyed by the
// interface routed to each bus; a missing key defaults to 1.
type Converter struct {
	Name              string
	Inputs            map[string]*Flow
	Outputs           map[string]*Flow
	ConversionFactors map[string]float64
}

// Label returns the converter name.
func (c *Converter) Label() string { return c.Name }

// CHP is a converter with the extraction/back-pressure turbine extras.
type CHP struct {
	Converter
	BackPressure            bool
	PowerLossIndex          []float64
	MinCondenserLoad        []float64
	FullCondensationFactors map[string]float64
}

// GenericStorage holds a commodity over time. InitialLevel and LossRate are
// fractions of the nominal capacity.
type GenericStorage struct {
	Name            string
	Inputs          map[string]*Flow
	Outputs         map[string]*Flow
	NominalCapacity *float64
	Investment      *Investment
	InitialLevel    float64
	Balanced        bool
	LossRate        float64
	InflowConversion  float64
	OutflowConversion float64
	// InvestRelation* fix the flow-rate-to-capacity ratio when the storage
	// capacity is expandable; computed once at build time.
	InvestRelationInputCapacity  *float64
	InvestRelationOutputCapacity *float64
}

// Label returns the storage name.
func (s *GenericStorage) Label() string { return s.Name }

// Direction addresses one transfer direction of a Link.
type Direction struct {
	From string
	To   string
}

// Link couples two busses bidirectionally with per-direction conversion
// factors.
type Link struct {
	Name        string
	Bus1        string
	Bus2        string
	Conversions map[Direction]float64
}

// Label returns the link name.
func (l *Link) Label() string { return l.Name }

// EnergySystem is the native model container: the time index plus every
// node keyed by label.
type EnergySystem struct {
	Timeindex         []time.Time
	GlobalConstraints map[string]float64
	nodes             []Node
	index             map[string]Node
}

// New returns an empty native energy system over the given time index.
func New(timeindex []time.Time) *EnergySystem {
	return &EnergySystem{
		Timeindex: timeindex,
		index:     make(map[string]Node),
	}
}

// Add inserts a node; duplicate labels are rejected.
func (es *EnergySystem) Add(n Node) error {
	if _, exists := es.index[n.Label()]; exists {
		return fmt.Errorf("node %q already exists in energy system", n.Label())
	}
	es.nodes = append(es.nodes, n)
	es.index[n.Label()] = n
	return nil
}

// Node returns the node with the given label.
func (es *EnergySystem) Node(label string) (Node, bool) {
	n, ok := es.index[label]
	return n, ok
}

// Nodes returns every node in insertion order.
func (es *EnergySystem) Nodes() []Node {
	return append([]Node{}, es.nodes...)
}

// Buses returns the bus nodes in insertion order.
func (es *EnergySystem) Buses() []*Bus {
	var buses []*Bus
	for _, n := range es.nodes {
		if b, ok := n.(*Bus); ok {
			buses = append(buses, b)
		}
	}
	return buses
}
