package omf

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func testIndex() []time.Time {
	start := time.Date(2019, 10, 3, 0, 0, 0, 0, time.UTC)
	return []time.Time{start, start.Add(time.Hour)}
}

func TestAddAndLookup(t *testing.T) {
	sys := New(testIndex())
	assert.NilError(t, sys.Add(&Bus{Name: "Powerline"}))
	assert.NilError(t, sys.Add(&Source{Name: "Supply"}))

	n, ok := sys.Node("Supply")
	assert.Assert(t, ok)
	assert.Equal(t, n.Label(), "Supply")

	_, ok = sys.Node("Ghost")
	assert.Assert(t, !ok)
}

func TestAddRejectsDuplicateLabels(t *testing.T) {
	sys := New(testIndex())
	assert.NilError(t, sys.Add(&Bus{Name: "Powerline"}))

	err := sys.Add(&Sink{Name: "Powerline"})
	assert.ErrorContains(t, err, "already exists")
}

func TestBusesFiltersInInsertionOrder(t *testing.T) {
	sys := New(testIndex())
	assert.NilError(t, sys.Add(&Bus{Name: "Pipeline"}))
	assert.NilError(t, sys.Add(&Source{Name: "Supply"}))
	assert.NilError(t, sys.Add(&Bus{Name: "Powerline"}))

	buses := sys.Buses()
	assert.Equal(t, len(buses), 2)
	assert.Equal(t, buses[0].Name, "Pipeline")
	assert.Equal(t, buses[1].Name, "Powerline")
}
