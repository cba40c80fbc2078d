package queries

import (
	"time"

	"github.com/anxornot/QuickQanava/domain/core/topology"
)

// NodeView is the read model for a single node
type NodeView struct {
	ID            string    `json:"id"`
	Label         string    `json:"label,omitempty"`
	GroupID       string    `json:"group_id,omitempty"`
	InEdgeIDs     []string  `json:"in_edge_ids"`
	OutEdgeIDs    []string  `json:"out_edge_ids"`
	InDegree      int       `json:"in_degree"`
	OutDegree     int       `json:"out_degree"`
	ObserverCount int       `json:"observer_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// EdgeView is the read model for a single edge
type EdgeView struct {
	ID            string    `json:"id"`
	SourceID      string    `json:"source_id"`
	DestinationID string    `json:"destination_id"`
	SelfLoop      bool      `json:"self_loop"`
	CreatedAt     time.Time `json:"created_at"`
}

// GroupView is the read model for a single group
type GroupView struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	NodeIDs   []string  `json:"node_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// GraphDataView is the read model for a whole graph
type GraphDataView struct {
	GraphID   string      `json:"graph_id"`
	Nodes     []NodeView  `json:"nodes"`
	Edges     []EdgeView  `json:"edges"`
	Groups    []GroupView `json:"groups"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// GraphStatsView summarizes a graph without materializing its topology
type GraphStatsView struct {
	GraphID    string    `json:"graph_id"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`
	GroupCount int       `json:"group_count"`
	SelfLoops  int       `json:"self_loops"`
	MaxDegree  int       `json:"max_degree"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newNodeView(node *topology.Node) NodeView {
	view := NodeView{
		ID:            node.ID().String(),
		Label:         node.Label(),
		InEdgeIDs:     make([]string, 0, node.InDegree()),
		OutEdgeIDs:    make([]string, 0, node.OutDegree()),
		InDegree:      node.InDegree(),
		OutDegree:     node.OutDegree(),
		ObserverCount: node.ObserverCount(),
		CreatedAt:     node.CreatedAt(),
	}
	for _, edge := range node.InEdges() {
		view.InEdgeIDs = append(view.InEdgeIDs, edge.ID().String())
	}
	for _, edge := range node.OutEdges() {
		view.OutEdgeIDs = append(view.OutEdgeIDs, edge.ID().String())
	}
	if group := node.Group(); group != nil {
		view.GroupID = group.ID().String()
	}
	return view
}

func newEdgeView(edge *topology.Edge) EdgeView {
	return EdgeView{
		ID:            edge.ID().String(),
		SourceID:      edge.Source().ID().String(),
		DestinationID: edge.Destination().ID().String(),
		SelfLoop:      edge.IsSelfLoop(),
		CreatedAt:     edge.CreatedAt(),
	}
}

func newGroupView(group *topology.Group) GroupView {
	view := GroupView{
		ID:        group.ID().String(),
		Label:     group.Label(),
		NodeIDs:   make([]string, 0, group.NodeCount()),
		CreatedAt: group.CreatedAt(),
	}
	for _, node := range group.Nodes() {
		view.NodeIDs = append(view.NodeIDs, node.ID().String())
	}
	return view
}
