package example

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

func TestMinimalWiring(t *testing.T) {
	sys := Minimal()
	assert.Equal(t, len(sys.Nodes()), 3)
	assert.Equal(t, len(sys.Edges()), 2)
	assert.Equal(t, len(es.Validate(sys)), 0)
}

func TestFuelPoweredWiring(t *testing.T) {
	sys := FuelPowered()
	assert.Equal(t, len(sys.Nodes()), 7)
	// battery charges and discharges over the powerline: 7 arcs total
	assert.Equal(t, len(sys.Edges()), 7)
	assert.Equal(t, len(es.Validate(sys)), 0)
}

func TestExpansionMarksInvestments(t *testing.T) {
	sys := Expansion()
	assert.Assert(t, sys.Transformers[0].Expandable["electricity"])
	assert.Assert(t, sys.Storages[0].Expandable[es.CapacityKey])
	assert.Assert(t, sys.Storages[0].FixedExpansionRatios["electricity"])
}
