// Package example assembles small, fully parameterized energy systems for
// demos and tests.
package example

import (
	"math"
	"time"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

// Minimal returns the smallest useful system: one source feeding one demand
// through a single bus.
func Minimal() *es.System {
	timeframe := es.HourlyTimeframe(time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC), 4)

	supply := es.Source{
		ID:      es.Uid{Name: "Supply", Carrier: "electricity", Component: "source", NodeType: "generator"},
		Outputs: []string{"electricity"},
	}
	demand := es.Sink{
		ID:     es.Uid{Name: "Demand", Carrier: "electricity", Component: "sink", NodeType: "demand"},
		Inputs: []string{"electricity"},
		FlowParameters: es.FlowParameters{
			FlowRates: map[string]es.MinMax{"electricity": {Min: 10, Max: 10}},
		},
	}
	powerline := es.Bus{
		ID:      es.Uid{Name: "Powerline", Carrier: "electricity", Component: "bus", NodeType: "grid"},
		Inputs:  []string{"Supply.electricity"},
		Outputs: []string{"Demand.electricity"},
	}

	return es.New(es.Uid{Name: "Minimal"}, timeframe, nil, supply, demand, powerline)
}

// FuelPowered returns a fuel based system: a gas source feeds a generator
// through a pipeline bus, the generator and a solar panel feed a powerline,
// and a battery balances the powerline against the demand.
func FuelPowered() *es.System {
	timeframe := es.HourlyTimeframe(time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC), 4)

	gasSupply := es.Source{
		ID:      es.Uid{Name: "Gas Supply", Region: "Here", Sector: "Power", Carrier: "gas", Component: "source", NodeType: "commodity"},
		Outputs: []string{"gas"},
		FlowParameters: es.FlowParameters{
			FlowCosts: map[string]float64{"gas": 10},
		},
	}
	pipeline := es.Bus{
		ID:      es.Uid{Name: "Pipeline", Carrier: "gas", Component: "bus", NodeType: "grid"},
		Inputs:  []string{"Gas Supply.gas"},
		Outputs: []string{"Generator.gas"},
	}
	generator := es.Transformer{
		ID:      es.Uid{Name: "Generator", Carrier: "electricity", Component: "transformer", NodeType: "generator"},
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity"},
		Conversions: es.ConversionTable{
			{From: "gas", To: "electricity", Rate: 0.42},
		},
		FlowParameters: es.FlowParameters{
			FlowRates:     map[string]es.MinMax{"electricity": {Min: 0, Max: 15}},
			FlowCosts:     map[string]float64{"electricity": 2},
			FlowEmissions: map[string]float64{"electricity": 0.35},
		},
	}
	solar := es.Source{
		ID:      es.Uid{Name: "Solar Panel", Carrier: "electricity", Component: "source", NodeType: "renewable"},
		Outputs: []string{"electricity"},
		FlowParameters: es.FlowParameters{
			FlowRates: map[string]es.MinMax{"electricity": {Min: 0, Max: 20}},
			Timeseries: map[string]es.SeriesBounds{
				"electricity": {
					Min: []float64{12, 3, 7, 11},
					Max: []float64{12, 3, 7, 11},
				},
			},
		},
	}
	battery := es.Storage{
		ID:         es.Uid{Name: "Battery", Carrier: "electricity", Component: "storage", NodeType: "storage"},
		Inputs:     []string{"electricity"},
		Outputs:    []string{"electricity"},
		Capacity:   100,
		InitialSOC: 10,
		IdleChanges: es.PositiveNegative{
			Positive: 0,
			Negative: 0.5,
		},
		FlowEfficiencies: map[string]es.InOut{
			"electricity": {Inflow: 0.95, Outflow: 0.93},
		},
		FlowParameters: es.FlowParameters{
			FlowRates: map[string]es.MinMax{"electricity": {Min: 0, Max: 30}},
		},
	}
	demand := es.Sink{
		ID:     es.Uid{Name: "Demand", Carrier: "electricity", Component: "sink", NodeType: "demand"},
		Inputs: []string{"electricity"},
		FlowParameters: es.FlowParameters{
			FlowRates: map[string]es.MinMax{"electricity": {Min: 11, Max: 11}},
		},
	}
	powerline := es.Bus{
		ID:      es.Uid{Name: "Powerline", Carrier: "electricity", Component: "bus", NodeType: "grid"},
		Inputs:  []string{"Generator.electricity", "Solar Panel.electricity", "Battery.electricity"},
		Outputs: []string{"Demand.electricity", "Battery.electricity"},
	}

	return es.New(
		es.Uid{Name: "Fuel Powered"},
		timeframe,
		map[string]float64{"emissions": math.Inf(1)},
		gasSupply, pipeline, generator, solar, battery, demand, powerline,
	)
}

// Expansion returns a system exercising the investment translation: a
// capped generator marked expandable next to an expandable storage.
func Expansion() *es.System {
	sys := FuelPowered()
	nodes := sys.Nodes()
	for i, n := range nodes {
		switch t := n.(type) {
		case es.Transformer:
			t.Expandable = map[string]bool{"electricity": true}
			t.ExpansionCosts = map[string]float64{"electricity": 5}
			t.ExpansionLimits = map[string]es.MinMax{"electricity": {Min: 10, Max: 50}}
			nodes[i] = t
		case es.Storage:
			t.Expandable = map[string]bool{es.CapacityKey: true, "electricity": true}
			t.ExpansionCosts = map[string]float64{es.CapacityKey: 2}
			t.ExpansionLimits = map[string]es.MinMax{es.CapacityKey: {Min: 100, Max: 500}}
			t.FixedExpansionRatios = map[string]bool{"electricity": true}
			nodes[i] = t
		}
	}
	return es.FromComponents(sys.UID, nodes, sys.Timeframe, sys.GlobalConstraints)
}
