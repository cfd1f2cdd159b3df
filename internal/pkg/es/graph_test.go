package es

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestGraphMirrorsNodesAndEdges(t *testing.T) {
	sys := chainSystem()
	g := sys.Graph()

	assert.Equal(t, g.Nodes().Len(), 3)
	assert.Equal(t, g.Edges().Len(), 2)
}

func TestGraphDropsDanglingArcs(t *testing.T) {
	gridA := Bus{ID: Uid{Name: "GridA", Carrier: "electricity"}}
	tie := Connector{ID: Uid{Name: "Tie"}, Interfaces: [2]string{"GridA", "NoSuchBus"}}
	sys := New(Uid{Name: "Dangling"}, testTimeframe(), nil, gridA, tie)

	g := sys.Graph()
	assert.Equal(t, g.Nodes().Len(), 2)
	// only the GridA<->Tie pair survives; arcs touching the missing bus vanish
	assert.Equal(t, g.Edges().Len(), 2)
}

func TestGraphEdgeCarriesCommodity(t *testing.T) {
	sys := chainSystem()
	g := sys.Graph()

	it := g.Edges()
	for it.Next() {
		e := it.Edge().(GraphEdge)
		assert.Equal(t, e.Carrier, "electricity")
	}
}
