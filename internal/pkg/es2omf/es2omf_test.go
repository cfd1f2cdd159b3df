package es2omf

import (
	"math"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/es/example"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

func TestReduceConversions(t *testing.T) {
	table := es.ConversionTable{
		{From: "fuel", To: "electricity", Rate: 0.3},
		{From: "air", To: "electricity", Rate: 0.2},
		{From: "fuel", To: "heat", Rate: 0.4},
		{From: "air", To: "heat", Rate: 0.25},
	}

	factors := reduceConversions(table)
	assert.Equal(t, len(factors), 3)
	assert.Equal(t, factors["electricity"], 0.3)
	assert.Equal(t, factors["heat"], 0.4)
	// the repeated input interface is reduced by reciprocal sum:
	// 1/(1/0.2 + 1/0.25) = 1/9
	assert.Assert(t, math.Abs(factors["air"]-1.0/9.0) < 1e-12)
}

func TestReduceConversionsSinglePairing(t *testing.T) {
	factors := reduceConversions(es.ConversionTable{{From: "gas", To: "electricity", Rate: 0.42}})
	assert.DeepEqual(t, factors, map[string]float64{"electricity": 0.42})
}

func TestScalarConversionsAveragesSeries(t *testing.T) {
	b := testBuilder()
	table := b.scalarConversions("Generator", es.ConversionTable{
		{From: "gas", To: "electricity", Series: []float64{0.2, 0.4}},
	})

	assert.Equal(t, table[0].Rate, 0.3)
	assert.Assert(t, table[0].Series == nil)
	assert.Equal(t, len(b.diags), 1)
	assert.Equal(t, b.diags[0].Field, "gas.electricity")
}

func TestTransformMinimal(t *testing.T) {
	native, diags, err := Transform(example.Minimal(), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 0)
	assert.Equal(t, len(native.Nodes()), 3)
	assert.Equal(t, len(native.Buses()), 1)

	n, ok := native.Node("Demand")
	assert.Assert(t, ok)
	sink := n.(*omf.Sink)
	flow := sink.Inputs["Powerline"]
	assert.Equal(t, *flow.Nominal, 10.0)
	assert.DeepEqual(t, flow.Min, []float64{1, 1, 1, 1})
	assert.DeepEqual(t, flow.Max, []float64{1, 1, 1, 1})
}

func TestTransformFuelPowered(t *testing.T) {
	native, diags, err := Transform(example.FuelPowered(), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 0)

	n, _ := native.Node("Generator")
	converter := n.(*omf.Converter)
	assert.Equal(t, converter.ConversionFactors["electricity"], 0.42)
	assert.Equal(t, *converter.Outputs["Powerline"].Nominal, 15.0)
	assert.Assert(t, converter.Inputs["Pipeline"] != nil)

	n, _ = native.Node("Solar Panel")
	solar := n.(*omf.Source)
	assert.DeepEqual(t, solar.Outputs["Powerline"].Fix, []float64{0.6, 0.15, 0.35, 0.55})
}

func TestTransformExpansion(t *testing.T) {
	native, diags, err := Transform(example.Expansion(), WithLogger(discardLogger()))
	assert.NilError(t, err)

	n, _ := native.Node("Generator")
	inv := n.(*omf.Converter).Outputs["Powerline"].Investment
	assert.Assert(t, inv != nil)
	assert.Equal(t, inv.Existing, 15.0)
	assert.Equal(t, inv.Minimum, 0.0)
	assert.Equal(t, inv.Maximum, 35.0)
	assert.Equal(t, inv.EpCosts, 5.0)

	// the clamp of the generator's expansion minimum is diagnosed
	found := false
	for _, d := range diags {
		if d.Component == "Generator" {
			found = true
		}
	}
	assert.Assert(t, found)
}

func TestTransformWarnsUnconnectedInterface(t *testing.T) {
	supply := es.Source{ID: es.Uid{Name: "Supply"}, Outputs: []string{"electricity"}}
	lonely := es.Bus{ID: es.Uid{Name: "Powerline"}}
	sys := es.New(
		es.Uid{Name: "Unconnected"},
		es.HourlyTimeframe(time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC), 4),
		nil, supply, lonely,
	)

	native, diags, err := Transform(sys, WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 1)

	n, _ := native.Node("Supply")
	assert.Equal(t, len(n.(*omf.Source).Outputs), 0)
}

func TestBuildLink(t *testing.T) {
	b := testBuilder()
	link := b.buildLink(es.Connector{
		ID:          es.Uid{Name: "Tie"},
		Interfaces:  [2]string{"GridA", "GridB"},
		Conversions: es.ConversionTable{{From: "GridA", To: "GridB", Rate: 0.9}},
	})

	assert.Equal(t, link.Bus1, "GridA")
	assert.Equal(t, link.Bus2, "GridB")
	assert.Equal(t, link.Conversions[omf.Direction{From: "GridA", To: "GridB"}], 0.9)
	// the undeclared reverse direction defaults to lossless
	assert.Equal(t, link.Conversions[omf.Direction{From: "GridB", To: "GridA"}], 1.0)
}

func chpSystem(plant es.CHP) *es.System {
	gas := es.Bus{ID: es.Uid{Name: "GasGrid", Carrier: "gas"}, Outputs: []string{"Plant.gas"}}
	grid := es.Bus{ID: es.Uid{Name: "Powerline", Carrier: "electricity"}, Inputs: []string{"Plant.electricity"}}
	heat := es.Bus{ID: es.Uid{Name: "HeatGrid", Carrier: "heat"}, Inputs: []string{"Plant.heat"}}
	return es.New(
		es.Uid{Name: "CHP"},
		es.HourlyTimeframe(time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC), 4),
		nil, gas, grid, heat, plant,
	)
}

func basePlant() es.CHP {
	return es.CHP{
		ID:      es.Uid{Name: "Plant"},
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity", "heat"},
		Conversions: es.ConversionTable{
			{From: "gas", To: "electricity", Rate: 0.3},
			{From: "gas", To: "heat", Rate: 0.4},
		},
	}
}

func TestBuildCHPExtraction(t *testing.T) {
	plant := basePlant()
	plant.ConversionsFullCondensation = es.ConversionTable{{From: "gas", To: "electricity", Rate: 0.5}}
	plant.PowerLossIndex = []float64{0.2, 0.2, 0.2, 0.2}
	plant.MinCondenserLoad = []float64{1, 1, 1, 1}

	native, diags, err := Transform(chpSystem(plant), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 0)

	n, _ := native.Node("Plant")
	chp := n.(*omf.CHP)
	assert.Equal(t, chp.ConversionFactors["electricity"], 0.3)
	assert.Equal(t, chp.FullCondensationFactors["electricity"], 0.5)
	assert.DeepEqual(t, chp.PowerLossIndex, []float64{0.2, 0.2, 0.2, 0.2})
	assert.Equal(t, chp.BackPressure, false)
}

func TestBuildCHPExtractionWithoutPowerLossIndex(t *testing.T) {
	plant := basePlant()
	plant.ConversionsFullCondensation = es.ConversionTable{{From: "gas", To: "electricity", Rate: 0.5}}

	native, diags, err := Transform(chpSystem(plant), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 1)

	n, _ := native.Node("Plant")
	assert.Assert(t, n.(*omf.CHP).FullCondensationFactors == nil)
}

func TestBuildCHPBackPressureExcludesExtraction(t *testing.T) {
	backPressure := true
	plant := basePlant()
	plant.BackPressure = &backPressure
	plant.PowerLossIndex = []float64{0.2, 0.2, 0.2, 0.2}

	native, diags, err := Transform(chpSystem(plant), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 1)

	n, _ := native.Node("Plant")
	chp := n.(*omf.CHP)
	assert.Equal(t, chp.BackPressure, true)
	assert.Assert(t, chp.FullCondensationFactors == nil)
	assert.Assert(t, chp.PowerLossIndex == nil)
}
