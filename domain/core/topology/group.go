package topology

import (
	"time"

	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
)

// Group is a named set of member nodes. Membership is unique and a node
// belongs to at most one group at a time; grouping carries no ownership,
// removing a group releases its members without destroying them.
type Group struct {
	id        valueobjects.GroupID
	label     string
	nodes     map[valueobjects.NodeID]*Node
	order     []valueobjects.NodeID
	createdAt time.Time
}

// NewGroup creates a group with a generated identity and no members
func NewGroup() *Group {
	return NewGroupWithID(valueobjects.NewGroupID())
}

// NewGroupWithID creates a group with the given identity
func NewGroupWithID(id valueobjects.GroupID) *Group {
	return &Group{
		id:        id,
		nodes:     make(map[valueobjects.NodeID]*Node),
		createdAt: time.Now().UTC(),
	}
}

// ID returns the group identity
func (g *Group) ID() valueobjects.GroupID { return g.id }

// Label returns the group's display label
func (g *Group) Label() string { return g.label }

// CreatedAt returns the group creation time
func (g *Group) CreatedAt() time.Time { return g.createdAt }

// HasNode reports whether the node is a member of this group
func (g *Group) HasNode(node *Node) bool {
	if node == nil {
		return false
	}
	_, ok := g.nodes[node.ID()]
	return ok
}

// Nodes returns the member nodes in grouping order
func (g *Group) Nodes() []*Node {
	result := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		if node, ok := g.nodes[id]; ok {
			result = append(result, node)
		}
	}
	return result
}

// NodeCount returns the number of member nodes
func (g *Group) NodeCount() int { return len(g.nodes) }

func (g *Group) setLabel(label string) { g.label = label }

func (g *Group) addNode(node *Node) {
	if _, ok := g.nodes[node.ID()]; ok {
		return
	}
	g.nodes[node.ID()] = node
	g.order = append(g.order, node.ID())
}

func (g *Group) removeNode(node *Node) {
	if _, ok := g.nodes[node.ID()]; !ok {
		return
	}
	delete(g.nodes, node.ID())
	for i, id := range g.order {
		if id.Equals(node.ID()) {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}
