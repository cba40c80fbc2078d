package topology

import (
	"fmt"
	"time"

	"github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/domain/events"
	"github.com/anxornot/QuickQanava/pkg/errors"
)

// Graph is the container owning all nodes, edges and groups of one
// topology. Every structural mutation goes through it: it is the single
// place where adjacency bookkeeping happens and where observer fan-out on
// the affected endpoints is triggered.
//
// A Graph is not safe for concurrent use. Mutations and their observer
// fan-out run synchronously on the calling goroutine; callers requiring
// concurrent access must serialize externally, one exclusive lock per
// container.
type Graph struct {
	id     string
	nodes  map[valueobjects.NodeID]*Node
	edges  map[valueobjects.EdgeID]*Edge
	groups map[valueobjects.GroupID]*Group

	// insertion order, used by the list accessors
	nodeOrder  []valueobjects.NodeID
	edgeOrder  []valueobjects.EdgeID
	groupOrder []valueobjects.GroupID

	cfg config.DomainConfig

	uncommittedEvents []events.DomainEvent
	createdAt         time.Time
	updatedAt         time.Time
}

// NewGraph creates an empty graph governed by the given limits
func NewGraph(id string, cfg config.DomainConfig) *Graph {
	now := time.Now().UTC()
	return &Graph{
		id:        id,
		nodes:     make(map[valueobjects.NodeID]*Node),
		edges:     make(map[valueobjects.EdgeID]*Edge),
		groups:    make(map[valueobjects.GroupID]*Group),
		cfg:       cfg,
		createdAt: now,
		updatedAt: now,
	}
}

// ID returns the graph identity
func (g *Graph) ID() string { return g.id }

// CreatedAt returns the graph creation time
func (g *Graph) CreatedAt() time.Time { return g.createdAt }

// UpdatedAt returns the time of the last structural mutation
func (g *Graph) UpdatedAt() time.Time { return g.updatedAt }

// Node Operations

// InsertNode creates a node with a generated identity and inserts it
func (g *Graph) InsertNode() (*Node, error) {
	return g.insertNode(NewNode())
}

// InsertNodeWithID creates a node with the given identity and inserts it.
// Fails with a conflict when the identity is already taken.
func (g *Graph) InsertNodeWithID(id valueobjects.NodeID) (*Node, error) {
	if _, exists := g.nodes[id]; exists {
		return nil, errors.NewConflictError(fmt.Sprintf("node %s already exists", id))
	}
	return g.insertNode(NewNodeWithID(id))
}

func (g *Graph) insertNode(node *Node) (*Node, error) {
	if g.cfg.MaxNodesPerGraph > 0 && len(g.nodes) >= g.cfg.MaxNodesPerGraph {
		return nil, errors.ErrNodeLimitExceeded.WithDetail("limit", g.cfg.MaxNodesPerGraph)
	}

	g.nodes[node.ID()] = node
	g.nodeOrder = append(g.nodeOrder, node.ID())
	g.touch()
	g.addEvent(events.NewNodeInserted(node.ID(), node.Label(), g.updatedAt))
	return node, nil
}

// RemoveNode removes the node and every edge touching it. Incident edges
// are removed first, in-edges then out-edges in adjacency order with
// self-loops removed once, each following the full edge removal protocol.
// The node is then detached from its group, if any, and destroyed.
func (g *Graph) RemoveNode(id valueobjects.NodeID) error {
	node, ok := g.nodes[id]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", id.String())
	}

	removed := make([]valueobjects.EdgeID, 0, node.Degree())
	seen := make(map[valueobjects.EdgeID]bool, node.Degree())
	incident := make([]*Edge, 0, node.Degree())
	for _, edge := range node.inEdges {
		if !seen[edge.ID()] {
			seen[edge.ID()] = true
			incident = append(incident, edge)
		}
	}
	for _, edge := range node.outEdges {
		if !seen[edge.ID()] {
			seen[edge.ID()] = true
			incident = append(incident, edge)
		}
	}
	for _, edge := range incident {
		g.removeEdge(edge)
		removed = append(removed, edge.ID())
	}

	if node.Group() != nil {
		node.Group().removeNode(node)
		node.setGroup(nil)
	}

	delete(g.nodes, id)
	g.nodeOrder = removeNodeID(g.nodeOrder, id)
	g.touch()
	g.addEvent(events.NewNodeRemoved(id, removed, g.updatedAt))
	return nil
}

// GetNode returns the node with the given identity
func (g *Graph) GetNode(id valueobjects.NodeID) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, errors.ErrNodeNotFound.WithDetail("node_id", id.String())
	}
	return node, nil
}

// HasNode reports whether the node is a member of this graph
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		result = append(result, g.nodes[id])
	}
	return result
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// SetNodeLabel updates the node's display label
func (g *Graph) SetNodeLabel(id valueobjects.NodeID, label string) error {
	node, ok := g.nodes[id]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", id.String())
	}
	if g.cfg.MaxLabelLength > 0 && len(label) > g.cfg.MaxLabelLength {
		return errors.ErrNodeLabelTooLong.WithDetail("max_length", g.cfg.MaxLabelLength)
	}
	node.setLabel(label)
	g.touch()
	return nil
}

// Edge Operations

// InsertEdge creates a directed edge from src to dst with a generated
// identity and inserts it
func (g *Graph) InsertEdge(src, dst valueobjects.NodeID) (*Edge, error) {
	return g.insertEdge(valueobjects.NewEdgeID(), src, dst)
}

// InsertEdgeWithID creates a directed edge with the given identity.
// Fails with a conflict when the identity is already taken.
func (g *Graph) InsertEdgeWithID(id valueobjects.EdgeID, src, dst valueobjects.NodeID) (*Edge, error) {
	if _, exists := g.edges[id]; exists {
		return nil, errors.NewConflictError(fmt.Sprintf("edge %s already exists", id))
	}
	return g.insertEdge(id, src, dst)
}

// insertEdge appends the edge to src's out-list and dst's in-list, then
// notifies src's observers before dst's observers.
func (g *Graph) insertEdge(id valueobjects.EdgeID, src, dst valueobjects.NodeID) (*Edge, error) {
	source, ok := g.nodes[src]
	if !ok {
		return nil, errors.ErrInvalidEndpoint.WithDetail("endpoint", "source").WithDetail("node_id", src.String())
	}
	destination, ok := g.nodes[dst]
	if !ok {
		return nil, errors.ErrInvalidEndpoint.WithDetail("endpoint", "destination").WithDetail("node_id", dst.String())
	}

	if source == destination && !g.cfg.AllowSelfLoops {
		return nil, errors.ErrSelfLoopNotAllowed.WithDetail("node_id", src.String())
	}
	if !g.cfg.AllowParallelEdges {
		for _, e := range source.outEdges {
			if e.destination == destination {
				return nil, errors.ErrParallelEdgeNotAllowed.
					WithDetail("source_id", src.String()).
					WithDetail("destination_id", dst.String())
			}
		}
	}
	if g.cfg.MaxEdgesPerGraph > 0 && len(g.edges) >= g.cfg.MaxEdgesPerGraph {
		return nil, errors.ErrEdgeLimitExceeded.WithDetail("limit", g.cfg.MaxEdgesPerGraph)
	}
	if g.cfg.MaxEdgesPerNode > 0 &&
		(source.OutDegree() >= g.cfg.MaxEdgesPerNode || destination.InDegree() >= g.cfg.MaxEdgesPerNode) {
		return nil, errors.ErrEdgeLimitExceeded.
			WithDetail("limit", g.cfg.MaxEdgesPerNode).
			WithDetail("scope", "node")
	}

	edge := newEdge(id, source, destination)
	g.edges[id] = edge
	g.edgeOrder = append(g.edgeOrder, id)
	source.addOutEdge(edge)
	destination.addInEdge(edge)

	source.notifyOutNodeInserted(source, destination, edge)
	destination.notifyInNodeInserted(destination, source, edge)

	g.touch()
	g.addEvent(events.NewEdgeInserted(id, src, dst, g.updatedAt))
	return edge, nil
}

// RemoveEdge removes the edge with the given identity, following the
// removal notification protocol: edge-context callbacks fire while the
// edge is still present in both adjacency lists, the edge is then
// detached, and the no-context callbacks fire last.
func (g *Graph) RemoveEdge(id valueobjects.EdgeID) error {
	edge, ok := g.edges[id]
	if !ok {
		return errors.ErrEdgeNotFound.WithDetail("edge_id", id.String())
	}
	g.removeEdge(edge)
	g.addEvent(events.NewEdgeRemoved(id, edge.source.ID(), edge.destination.ID(), g.updatedAt))
	return nil
}

func (g *Graph) removeEdge(edge *Edge) {
	source := edge.source
	destination := edge.destination

	source.notifyOutNodeRemoved(source, destination, edge)
	destination.notifyInNodeRemoved(destination, source, edge)

	source.removeOutEdge(edge)
	destination.removeInEdge(edge)
	delete(g.edges, edge.ID())
	g.edgeOrder = removeEdgeID(g.edgeOrder, edge.ID())

	source.notifyOutNodeRemovedFinal(source)
	destination.notifyInNodeRemovedFinal(destination)

	g.touch()
}

// GetEdge returns the edge with the given identity
func (g *Graph) GetEdge(id valueobjects.EdgeID) (*Edge, error) {
	edge, ok := g.edges[id]
	if !ok {
		return nil, errors.ErrEdgeNotFound.WithDetail("edge_id", id.String())
	}
	return edge, nil
}

// HasEdge reports whether the edge is a member of this graph
func (g *Graph) HasEdge(id valueobjects.EdgeID) bool {
	_, ok := g.edges[id]
	return ok
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	result := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		result = append(result, g.edges[id])
	}
	return result
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Group Operations

// InsertGroup creates a group with a generated identity and inserts it
func (g *Graph) InsertGroup() (*Group, error) {
	return g.insertGroup(NewGroup())
}

// InsertGroupWithID creates a group with the given identity and inserts it
func (g *Graph) InsertGroupWithID(id valueobjects.GroupID) (*Group, error) {
	if _, exists := g.groups[id]; exists {
		return nil, errors.NewConflictError(fmt.Sprintf("group %s already exists", id))
	}
	return g.insertGroup(NewGroupWithID(id))
}

func (g *Graph) insertGroup(group *Group) (*Group, error) {
	if g.cfg.MaxGroupsPerGraph > 0 && len(g.groups) >= g.cfg.MaxGroupsPerGraph {
		return nil, errors.ErrGroupLimitExceeded.WithDetail("limit", g.cfg.MaxGroupsPerGraph)
	}

	g.groups[group.ID()] = group
	g.groupOrder = append(g.groupOrder, group.ID())
	g.touch()
	g.addEvent(events.NewGroupInserted(group.ID(), group.Label(), g.updatedAt))
	return group, nil
}

// RemoveGroup removes the group, releasing its member nodes. The nodes
// themselves survive.
func (g *Graph) RemoveGroup(id valueobjects.GroupID) error {
	group, ok := g.groups[id]
	if !ok {
		return errors.ErrGroupNotFound.WithDetail("group_id", id.String())
	}

	members := group.Nodes()
	released := make([]valueobjects.NodeID, 0, len(members))
	for _, node := range members {
		group.removeNode(node)
		node.setGroup(nil)
		released = append(released, node.ID())
	}

	delete(g.groups, id)
	g.groupOrder = removeGroupID(g.groupOrder, id)
	g.touch()
	g.addEvent(events.NewGroupRemoved(id, released, g.updatedAt))
	return nil
}

// GetGroup returns the group with the given identity
func (g *Graph) GetGroup(id valueobjects.GroupID) (*Group, error) {
	group, ok := g.groups[id]
	if !ok {
		return nil, errors.ErrGroupNotFound.WithDetail("group_id", id.String())
	}
	return group, nil
}

// Groups returns all groups in insertion order
func (g *Graph) Groups() []*Group {
	result := make([]*Group, 0, len(g.groupOrder))
	for _, id := range g.groupOrder {
		result = append(result, g.groups[id])
	}
	return result
}

// GroupCount returns the number of groups
func (g *Graph) GroupCount() int { return len(g.groups) }

// SetGroupLabel updates the group's display label
func (g *Graph) SetGroupLabel(id valueobjects.GroupID, label string) error {
	group, ok := g.groups[id]
	if !ok {
		return errors.ErrGroupNotFound.WithDetail("group_id", id.String())
	}
	if g.cfg.MaxLabelLength > 0 && len(label) > g.cfg.MaxLabelLength {
		return errors.ErrNodeLabelTooLong.WithDetail("max_length", g.cfg.MaxLabelLength)
	}
	group.setLabel(label)
	g.touch()
	return nil
}

// GroupNode adds the node to the group. A node belongs to at most one
// group at a time, so it is first removed from its current group.
func (g *Graph) GroupNode(groupID valueobjects.GroupID, nodeID valueobjects.NodeID) error {
	group, ok := g.groups[groupID]
	if !ok {
		return errors.ErrGroupNotFound.WithDetail("group_id", groupID.String())
	}
	node, ok := g.nodes[nodeID]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", nodeID.String())
	}

	if current := node.Group(); current != nil {
		if current == group {
			return nil
		}
		current.removeNode(node)
		g.addEvent(events.NewNodeUngrouped(current.ID(), nodeID, time.Now().UTC()))
	}

	group.addNode(node)
	node.setGroup(group)
	g.touch()
	g.addEvent(events.NewNodeGrouped(groupID, nodeID, g.updatedAt))
	return nil
}

// UngroupNode removes the node from the group without destroying it
func (g *Graph) UngroupNode(groupID valueobjects.GroupID, nodeID valueobjects.NodeID) error {
	group, ok := g.groups[groupID]
	if !ok {
		return errors.ErrGroupNotFound.WithDetail("group_id", groupID.String())
	}
	node, ok := g.nodes[nodeID]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", nodeID.String())
	}
	if !group.HasNode(node) {
		return errors.ErrNodeNotInGroup.
			WithDetail("group_id", groupID.String()).
			WithDetail("node_id", nodeID.String())
	}

	group.removeNode(node)
	node.setGroup(nil)
	g.touch()
	g.addEvent(events.NewNodeUngrouped(groupID, nodeID, g.updatedAt))
	return nil
}

// Observer Operations

// AttachObserver attaches the observer to the node. Observers start
// enabled and receive callbacks for mutations occurring after attachment.
func (g *Graph) AttachObserver(nodeID valueobjects.NodeID, observer NodeObserver) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", nodeID.String())
	}
	if g.cfg.MaxObserversPerNode > 0 && node.ObserverCount() >= g.cfg.MaxObserversPerNode {
		return errors.ErrObserverLimitExceeded.WithDetail("limit", g.cfg.MaxObserversPerNode)
	}
	return node.Attach(node, observer)
}

// DetachObserver detaches the observer from the node
func (g *Graph) DetachObserver(nodeID valueobjects.NodeID, observer NodeObserver) error {
	node, ok := g.nodes[nodeID]
	if !ok {
		return errors.ErrNodeNotFound.WithDetail("node_id", nodeID.String())
	}
	return node.Detach(observer)
}

// Maintenance

// Clear removes every node, edge and group without firing per-entity
// observer callbacks
func (g *Graph) Clear() {
	nodeCount := len(g.nodes)
	edgeCount := len(g.edges)
	groupCount := len(g.groups)

	g.nodes = make(map[valueobjects.NodeID]*Node)
	g.edges = make(map[valueobjects.EdgeID]*Edge)
	g.groups = make(map[valueobjects.GroupID]*Group)
	g.nodeOrder = nil
	g.edgeOrder = nil
	g.groupOrder = nil

	g.touch()
	g.addEvent(events.NewGraphCleared(g.id, nodeCount, edgeCount, groupCount, g.updatedAt))
}

// Validate checks the structural invariants of the whole container:
// adjacency symmetry, endpoint membership and group membership symmetry.
func (g *Graph) Validate() error {
	for _, node := range g.nodes {
		for _, edge := range node.outEdges {
			if edge.source != node {
				return errors.NewInternalError(fmt.Sprintf("edge %s in out-list of node %s has source %s", edge.ID(), node.ID(), edge.source.ID()))
			}
			if _, ok := g.edges[edge.ID()]; !ok {
				return errors.NewInternalError(fmt.Sprintf("edge %s referenced by node %s is not owned by this graph", edge.ID(), node.ID()))
			}
		}
		for _, edge := range node.inEdges {
			if edge.destination != node {
				return errors.NewInternalError(fmt.Sprintf("edge %s in in-list of node %s has destination %s", edge.ID(), node.ID(), edge.destination.ID()))
			}
		}
		if group := node.Group(); group != nil && !group.HasNode(node) {
			return errors.NewInternalError(fmt.Sprintf("node %s references group %s that does not contain it", node.ID(), group.ID()))
		}
	}
	for _, edge := range g.edges {
		if !g.HasNode(edge.source.ID()) || !g.HasNode(edge.destination.ID()) {
			return errors.NewInternalError(fmt.Sprintf("edge %s has an endpoint outside this graph", edge.ID()))
		}
		if !edge.source.hasOutEdge(edge) || !edge.destination.hasInEdge(edge) {
			return errors.NewInternalError(fmt.Sprintf("edge %s is missing from an endpoint adjacency list", edge.ID()))
		}
	}
	for _, group := range g.groups {
		for _, node := range group.Nodes() {
			if node.Group() != group {
				return errors.NewInternalError(fmt.Sprintf("group %s contains node %s that does not reference it", group.ID(), node.ID()))
			}
		}
	}
	return nil
}

// Domain Events

// GetUncommittedEvents returns events raised since the last commit
func (g *Graph) GetUncommittedEvents() []events.DomainEvent {
	return g.uncommittedEvents
}

// MarkEventsAsCommitted clears the uncommitted event list
func (g *Graph) MarkEventsAsCommitted() {
	g.uncommittedEvents = nil
}

func (g *Graph) addEvent(event events.DomainEvent) {
	g.uncommittedEvents = append(g.uncommittedEvents, event)
}

func (g *Graph) touch() {
	g.updatedAt = time.Now().UTC()
}

func removeNodeID(ids []valueobjects.NodeID, id valueobjects.NodeID) []valueobjects.NodeID {
	for i, candidate := range ids {
		if candidate.Equals(id) {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeEdgeID(ids []valueobjects.EdgeID, id valueobjects.EdgeID) []valueobjects.EdgeID {
	for i, candidate := range ids {
		if candidate.Equals(id) {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeGroupID(ids []valueobjects.GroupID, id valueobjects.GroupID) []valueobjects.GroupID {
	for i, candidate := range ids {
		if candidate.Equals(id) {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
