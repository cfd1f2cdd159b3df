package es

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// GraphNode is a directed graph node carrying the component's rendered Uid
// and its attribute payload.
type GraphNode struct {
	id    int64
	Label string
	Attrs map[string]interface{}
}

// ID implements gonum's graph.Node.
func (n GraphNode) ID() int64 { return n.id }

// GraphEdge is a directed arc tagged with the carrier that routed it.
type GraphEdge struct {
	F       graph.Node
	T       graph.Node
	Carrier string
}

// From implements gonum's graph.Edge.
func (e GraphEdge) From() graph.Node { return e.F }

// To implements gonum's graph.Edge.
func (e GraphEdge) To() graph.Node { return e.T }

// ReversedEdge implements gonum's graph.Edge.
func (e GraphEdge) ReversedEdge() graph.Edge {
	return GraphEdge{F: e.T, T: e.F, Carrier: e.Carrier}
}

// Graph materializes the derived component graph as a gonum directed graph.
// Nodes are keyed by rendered Uid with the component attributes as payload;
// arcs are exactly the Edges sequence, each tagged with its carrier. Arcs
// whose endpoints resolve to no node (dangling connector references) are
// dropped.
func (sys *System) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	byName := make(map[string]GraphNode)
	for i, c := range sys.Nodes() {
		n := GraphNode{id: int64(i), Label: c.UID().String(), Attrs: c.Attributes()}
		byName[n.Label] = n
		g.AddNode(n)
	}

	carriers := sys.EdgeCarriers()
	for _, e := range sys.Edges() {
		from, okF := byName[e.Source]
		to, okT := byName[e.Target]
		if !okF || !okT || from.id == to.id {
			continue
		}
		g.SetEdge(GraphEdge{F: from, T: to, Carrier: carriers[e]})
	}
	return g
}
