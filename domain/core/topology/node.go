package topology

import (
	"time"

	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
)

// Node is a vertex owned by a Graph. It tracks its in and out edges in
// insertion order, an optional containing group and the observers watching
// its adjacency. Adjacency lists hold references only; the graph owns the
// edges themselves.
type Node struct {
	Observable

	id        valueobjects.NodeID
	label     string
	inEdges   []*Edge
	outEdges  []*Edge
	group     *Group
	createdAt time.Time
}

// NewNode creates a node with a generated identity and empty adjacency
func NewNode() *Node {
	return &Node{
		id:        valueobjects.NewNodeID(),
		createdAt: time.Now().UTC(),
	}
}

// NewNodeWithID creates a node with the given identity
func NewNodeWithID(id valueobjects.NodeID) *Node {
	return &Node{
		id:        id,
		createdAt: time.Now().UTC(),
	}
}

// ID returns the node identity
func (n *Node) ID() valueobjects.NodeID { return n.id }

// Label returns the node's display label
func (n *Node) Label() string { return n.label }

// CreatedAt returns the node creation time
func (n *Node) CreatedAt() time.Time { return n.createdAt }

// Group returns the containing group, nil when ungrouped
func (n *Node) Group() *Group { return n.group }

// InEdges returns the edges ending at this node in insertion order
func (n *Node) InEdges() []*Edge {
	result := make([]*Edge, len(n.inEdges))
	copy(result, n.inEdges)
	return result
}

// OutEdges returns the edges starting at this node in insertion order
func (n *Node) OutEdges() []*Edge {
	result := make([]*Edge, len(n.outEdges))
	copy(result, n.outEdges)
	return result
}

// InDegree returns the number of in-edges
func (n *Node) InDegree() int { return len(n.inEdges) }

// OutDegree returns the number of out-edges
func (n *Node) OutDegree() int { return len(n.outEdges) }

// Degree returns the total number of incident edges, self-loops counted twice
func (n *Node) Degree() int { return len(n.inEdges) + len(n.outEdges) }

func (n *Node) setLabel(label string) { n.label = label }

func (n *Node) setGroup(group *Group) { n.group = group }

func (n *Node) addInEdge(edge *Edge) {
	n.inEdges = append(n.inEdges, edge)
}

func (n *Node) addOutEdge(edge *Edge) {
	n.outEdges = append(n.outEdges, edge)
}

func (n *Node) removeInEdge(edge *Edge) {
	for i, e := range n.inEdges {
		if e == edge {
			n.inEdges = append(n.inEdges[:i], n.inEdges[i+1:]...)
			return
		}
	}
}

func (n *Node) removeOutEdge(edge *Edge) {
	for i, e := range n.outEdges {
		if e == edge {
			n.outEdges = append(n.outEdges[:i], n.outEdges[i+1:]...)
			return
		}
	}
}

// hasInEdge reports whether the edge is currently in the in-list
func (n *Node) hasInEdge(edge *Edge) bool {
	for _, e := range n.inEdges {
		if e == edge {
			return true
		}
	}
	return false
}

// hasOutEdge reports whether the edge is currently in the out-list
func (n *Node) hasOutEdge(edge *Edge) bool {
	for _, e := range n.outEdges {
		if e == edge {
			return true
		}
	}
	return false
}
