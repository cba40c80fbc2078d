package topology

import (
	"time"

	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
)

// Edge is a directed connection between two nodes of the same graph. Both
// endpoints are mandatory for the whole lifetime of the edge; a half
// connected edge never appears in the visible topology.
type Edge struct {
	id          valueobjects.EdgeID
	source      *Node
	destination *Node
	createdAt   time.Time
}

func newEdge(id valueobjects.EdgeID, source, destination *Node) *Edge {
	return &Edge{
		id:          id,
		source:      source,
		destination: destination,
		createdAt:   time.Now().UTC(),
	}
}

// ID returns the edge identity
func (e *Edge) ID() valueobjects.EdgeID { return e.id }

// Source returns the node this edge starts at
func (e *Edge) Source() *Node { return e.source }

// Destination returns the node this edge ends at
func (e *Edge) Destination() *Node { return e.destination }

// IsSelfLoop reports whether both endpoints are the same node
func (e *Edge) IsSelfLoop() bool { return e.source == e.destination }

// CreatedAt returns the edge creation time
func (e *Edge) CreatedAt() time.Time { return e.createdAt }
