package events

import (
	"time"

	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Node Events

// NodeInserted is raised when a node is inserted into a graph
type NodeInserted struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
	Label  string              `json:"label,omitempty"`
}

// NewNodeInserted creates a NodeInserted event
func NewNodeInserted(nodeID valueobjects.NodeID, label string, timestamp time.Time) NodeInserted {
	return NodeInserted{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "topology.node_inserted",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID: nodeID,
		Label:  label,
	}
}

// NodeRemoved is raised when a node is removed from a graph together
// with all of its incident edges
type NodeRemoved struct {
	BaseEvent
	NodeID       valueobjects.NodeID   `json:"node_id"`
	RemovedEdges []valueobjects.EdgeID `json:"removed_edges,omitempty"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(nodeID valueobjects.NodeID, removedEdges []valueobjects.EdgeID, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "topology.node_removed",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeID:       nodeID,
		RemovedEdges: removedEdges,
	}
}

// Edge Events

// EdgeInserted is raised when a directed edge is inserted between two nodes
type EdgeInserted struct {
	BaseEvent
	EdgeID        valueobjects.EdgeID `json:"edge_id"`
	SourceID      valueobjects.NodeID `json:"source_id"`
	DestinationID valueobjects.NodeID `json:"destination_id"`
}

// NewEdgeInserted creates an EdgeInserted event
func NewEdgeInserted(edgeID valueobjects.EdgeID, sourceID, destinationID valueobjects.NodeID, timestamp time.Time) EdgeInserted {
	return EdgeInserted{
		BaseEvent: BaseEvent{
			AggregateID: edgeID.String(),
			EventType:   "topology.edge_inserted",
			Timestamp:   timestamp,
			Version:     1,
		},
		EdgeID:        edgeID,
		SourceID:      sourceID,
		DestinationID: destinationID,
	}
}

// EdgeRemoved is raised when an edge is removed from a graph
type EdgeRemoved struct {
	BaseEvent
	EdgeID        valueobjects.EdgeID `json:"edge_id"`
	SourceID      valueobjects.NodeID `json:"source_id"`
	DestinationID valueobjects.NodeID `json:"destination_id"`
}

// NewEdgeRemoved creates an EdgeRemoved event
func NewEdgeRemoved(edgeID valueobjects.EdgeID, sourceID, destinationID valueobjects.NodeID, timestamp time.Time) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: edgeID.String(),
			EventType:   "topology.edge_removed",
			Timestamp:   timestamp,
			Version:     1,
		},
		EdgeID:        edgeID,
		SourceID:      sourceID,
		DestinationID: destinationID,
	}
}

// Group Events

// GroupInserted is raised when a group is inserted into a graph
type GroupInserted struct {
	BaseEvent
	GroupID valueobjects.GroupID `json:"group_id"`
	Label   string               `json:"label,omitempty"`
}

// NewGroupInserted creates a GroupInserted event
func NewGroupInserted(groupID valueobjects.GroupID, label string, timestamp time.Time) GroupInserted {
	return GroupInserted{
		BaseEvent: BaseEvent{
			AggregateID: groupID.String(),
			EventType:   "topology.group_inserted",
			Timestamp:   timestamp,
			Version:     1,
		},
		GroupID: groupID,
		Label:   label,
	}
}

// GroupRemoved is raised when a group is removed from a graph
// Member nodes survive the removal
type GroupRemoved struct {
	BaseEvent
	GroupID       valueobjects.GroupID  `json:"group_id"`
	ReleasedNodes []valueobjects.NodeID `json:"released_nodes,omitempty"`
}

// NewGroupRemoved creates a GroupRemoved event
func NewGroupRemoved(groupID valueobjects.GroupID, releasedNodes []valueobjects.NodeID, timestamp time.Time) GroupRemoved {
	return GroupRemoved{
		BaseEvent: BaseEvent{
			AggregateID: groupID.String(),
			EventType:   "topology.group_removed",
			Timestamp:   timestamp,
			Version:     1,
		},
		GroupID:       groupID,
		ReleasedNodes: releasedNodes,
	}
}

// NodeGrouped is raised when a node is added to a group
type NodeGrouped struct {
	BaseEvent
	GroupID valueobjects.GroupID `json:"group_id"`
	NodeID  valueobjects.NodeID  `json:"node_id"`
}

// NewNodeGrouped creates a NodeGrouped event
func NewNodeGrouped(groupID valueobjects.GroupID, nodeID valueobjects.NodeID, timestamp time.Time) NodeGrouped {
	return NodeGrouped{
		BaseEvent: BaseEvent{
			AggregateID: groupID.String(),
			EventType:   "topology.node_grouped",
			Timestamp:   timestamp,
			Version:     1,
		},
		GroupID: groupID,
		NodeID:  nodeID,
	}
}

// NodeUngrouped is raised when a node is removed from a group
type NodeUngrouped struct {
	BaseEvent
	GroupID valueobjects.GroupID `json:"group_id"`
	NodeID  valueobjects.NodeID  `json:"node_id"`
}

// NewNodeUngrouped creates a NodeUngrouped event
func NewNodeUngrouped(groupID valueobjects.GroupID, nodeID valueobjects.NodeID, timestamp time.Time) NodeUngrouped {
	return NodeUngrouped{
		BaseEvent: BaseEvent{
			AggregateID: groupID.String(),
			EventType:   "topology.node_ungrouped",
			Timestamp:   timestamp,
			Version:     1,
		},
		GroupID: groupID,
		NodeID:  nodeID,
	}
}

// GraphCleared is raised when all topology is removed from a graph at once
type GraphCleared struct {
	BaseEvent
	NodeCount  int `json:"node_count"`
	EdgeCount  int `json:"edge_count"`
	GroupCount int `json:"group_count"`
}

// NewGraphCleared creates a GraphCleared event
func NewGraphCleared(graphID string, nodeCount, edgeCount, groupCount int, timestamp time.Time) GraphCleared {
	return GraphCleared{
		BaseEvent: BaseEvent{
			AggregateID: graphID,
			EventType:   "topology.graph_cleared",
			Timestamp:   timestamp,
			Version:     1,
		},
		NodeCount:  nodeCount,
		EdgeCount:  edgeCount,
		GroupCount: groupCount,
	}
}
