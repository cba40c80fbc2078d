package topology

// NodeObserver receives adjacency change notifications for a single node.
// Implementations embed NodeObserverBase and override only the hooks they
// care about.
type NodeObserver interface {
	// Name returns the observer's optional diagnostic name
	Name() string

	// SetName assigns a diagnostic name to the observer
	SetName(name string)

	// Enable resumes callback delivery for subsequent mutations
	Enable()

	// Disable suspends callback delivery; missed events are not replayed
	Disable()

	// IsEnabled reports whether the observer currently receives callbacks
	IsEnabled() bool

	// Target returns the node this observer is attached to, nil when detached
	Target() *Node

	// setTarget records the back-reference during attach and detach
	setTarget(target *Node)

	// OnInNodeInserted fires after an edge ending at target has been inserted
	OnInNodeInserted(target *Node, inNode *Node, edge *Edge)

	// OnInNodeRemoved fires before an edge ending at target is detached;
	// the edge is still present in both adjacency lists
	OnInNodeRemoved(target *Node, inNode *Node, edge *Edge)

	// OnInNodeRemovedFinal fires after an in-edge of target has been
	// detached; edge details are no longer available
	OnInNodeRemovedFinal(target *Node)

	// OnOutNodeInserted fires after an edge starting at target has been inserted
	OnOutNodeInserted(target *Node, outNode *Node, edge *Edge)

	// OnOutNodeRemoved fires before an edge starting at target is detached;
	// the edge is still present in both adjacency lists
	OnOutNodeRemoved(target *Node, outNode *Node, edge *Edge)

	// OnOutNodeRemovedFinal fires after an out-edge of target has been
	// detached; edge details are no longer available
	OnOutNodeRemovedFinal(target *Node)
}

// ObserverBase carries the state shared by every observer: an optional
// name, the enabled flag and a back-reference to the watched node.
// The zero value is enabled and unattached.
type ObserverBase struct {
	name     string
	disabled bool
	target   *Node
}

// Name returns the observer's diagnostic name
func (o *ObserverBase) Name() string { return o.name }

// SetName assigns a diagnostic name
func (o *ObserverBase) SetName(name string) { o.name = name }

// Enable resumes callback delivery; idempotent
func (o *ObserverBase) Enable() { o.disabled = false }

// Disable suspends callback delivery; idempotent
func (o *ObserverBase) Disable() { o.disabled = true }

// IsEnabled reports whether callbacks are currently delivered
func (o *ObserverBase) IsEnabled() bool { return !o.disabled }

// Target returns the watched node, nil when unattached
func (o *ObserverBase) Target() *Node { return o.target }

func (o *ObserverBase) setTarget(target *Node) { o.target = target }

// NodeObserverBase provides no-op implementations for every notification
// hook so that concrete observers override only the subset they need.
type NodeObserverBase struct {
	ObserverBase
}

func (o *NodeObserverBase) OnInNodeInserted(target *Node, inNode *Node, edge *Edge)   {}
func (o *NodeObserverBase) OnInNodeRemoved(target *Node, inNode *Node, edge *Edge)    {}
func (o *NodeObserverBase) OnInNodeRemovedFinal(target *Node)                         {}
func (o *NodeObserverBase) OnOutNodeInserted(target *Node, outNode *Node, edge *Edge) {}
func (o *NodeObserverBase) OnOutNodeRemoved(target *Node, outNode *Node, edge *Edge)  {}
func (o *NodeObserverBase) OnOutNodeRemovedFinal(target *Node)                        {}
