package es2omf

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/es/example"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

func storageSystem(battery es.Storage) *es.System {
	powerline := es.Bus{
		ID:      es.Uid{Name: "Powerline", Carrier: "electricity"},
		Inputs:  []string{"Battery.electricity"},
		Outputs: []string{"Battery.electricity"},
	}
	return es.New(
		es.Uid{Name: "Storage"},
		es.HourlyTimeframe(time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC), 4),
		nil, powerline, battery,
	)
}

func TestBuildStorageNormalizesToCapacity(t *testing.T) {
	native, diags, err := Transform(example.FuelPowered(), WithLogger(discardLogger()))
	assert.NilError(t, err)
	assert.Equal(t, len(diags), 0)

	n, _ := native.Node("Battery")
	battery := n.(*omf.GenericStorage)
	assert.Equal(t, *battery.NominalCapacity, 100.0)
	assert.Equal(t, battery.InitialLevel, 0.1)
	assert.Equal(t, battery.LossRate, 0.005)
	assert.Equal(t, battery.InflowConversion, 0.95)
	assert.Equal(t, battery.OutflowConversion, 0.93)
	assert.Equal(t, battery.Balanced, false)
}

func TestBuildStorageBalanced(t *testing.T) {
	final := 10.0
	battery := es.Storage{
		ID:         es.Uid{Name: "Battery"},
		Inputs:     []string{"electricity"},
		Outputs:    []string{"electricity"},
		Capacity:   100,
		InitialSOC: 10,
		FinalSOC:   &final,
	}

	native, _, err := Transform(storageSystem(battery), WithLogger(discardLogger()))
	assert.NilError(t, err)

	n, _ := native.Node("Battery")
	assert.Equal(t, n.(*omf.GenericStorage).Balanced, true)
}

func TestBuildStorageZeroCapacity(t *testing.T) {
	battery := es.Storage{
		ID:          es.Uid{Name: "Battery"},
		Inputs:      []string{"electricity"},
		Outputs:     []string{"electricity"},
		InitialSOC:  5,
		IdleChanges: es.PositiveNegative{Negative: 1},
	}

	native, diags, err := Transform(storageSystem(battery), WithLogger(discardLogger()))
	assert.NilError(t, err)
	// never divides by the zero capacity, one diagnostic per substituted field
	assert.Equal(t, len(diags), 2)

	n, _ := native.Node("Battery")
	storage := n.(*omf.GenericStorage)
	assert.Equal(t, storage.InitialLevel, 0.0)
	assert.Equal(t, storage.LossRate, 0.0)
}

func TestBuildStorageCapacityInvestment(t *testing.T) {
	native, _, err := Transform(example.Expansion(), WithLogger(discardLogger()))
	assert.NilError(t, err)

	n, _ := native.Node("Battery")
	battery := n.(*omf.GenericStorage)
	assert.Assert(t, battery.NominalCapacity == nil)
	assert.Equal(t, battery.Investment.Existing, 100.0)
	assert.Equal(t, battery.Investment.Minimum, 0.0)
	assert.Equal(t, battery.Investment.Maximum, 400.0)
	assert.Equal(t, battery.Investment.EpCosts, 2.0)

	// the fixed expansion ratio is the rate cap over the installed capacity
	assert.Equal(t, *battery.InvestRelationInputCapacity, 0.3)
	assert.Equal(t, *battery.InvestRelationOutputCapacity, 0.3)
}

func TestInvestRelationSkipsUnboundedRate(t *testing.T) {
	battery := es.Storage{
		ID:                   es.Uid{Name: "Battery"},
		Inputs:               []string{"electricity"},
		Outputs:              []string{"electricity"},
		Capacity:             100,
		FixedExpansionRatios: map[string]bool{"electricity": true},
		FlowParameters: es.FlowParameters{
			Expandable: map[string]bool{es.CapacityKey: true},
		},
	}

	native, diags, err := Transform(storageSystem(battery), WithLogger(discardLogger()))
	assert.NilError(t, err)
	// once per charge direction
	assert.Equal(t, len(diags), 2)

	n, _ := native.Node("Battery")
	storage := n.(*omf.GenericStorage)
	assert.Assert(t, storage.InvestRelationInputCapacity == nil)
	assert.Assert(t, storage.InvestRelationOutputCapacity == nil)
}
