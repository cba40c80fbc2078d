package topology

import (
	"github.com/anxornot/QuickQanava/pkg/errors"
)

// Observable owns the ordered collection of observers attached to one node
// and is the sole fan-out point for adjacency notifications. Observers are
// invoked in attachment order; disabled observers are skipped silently.
//
// Fan-out iterates the live collection. Observers must not attach or detach
// observers on the same node, nor mutate the owning graph, from within a
// callback.
type Observable struct {
	observers []NodeObserver
}

// Attach appends the observer to the collection and sets its target
// back-reference. Attaching the same observer instance twice fails with
// ErrObserverAlreadyAttached.
func (o *Observable) Attach(target *Node, observer NodeObserver) error {
	if observer == nil {
		return errors.NewValidationError("observer must not be nil")
	}
	for _, attached := range o.observers {
		if attached == observer {
			return errors.ErrObserverAlreadyAttached
		}
	}
	observer.setTarget(target)
	o.observers = append(o.observers, observer)
	return nil
}

// Detach removes the observer from the collection and clears its target
// back-reference. Fails with ErrObserverNotAttached if it is not present.
func (o *Observable) Detach(observer NodeObserver) error {
	for i, attached := range o.observers {
		if attached == observer {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			observer.setTarget(nil)
			return nil
		}
	}
	return errors.ErrObserverNotAttached
}

// Observers returns the attached observers in attachment order
func (o *Observable) Observers() []NodeObserver {
	result := make([]NodeObserver, len(o.observers))
	copy(result, o.observers)
	return result
}

// ObserverCount returns the number of attached observers
func (o *Observable) ObserverCount() int {
	return len(o.observers)
}

func (o *Observable) notifyInNodeInserted(target *Node, inNode *Node, edge *Edge) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnInNodeInserted(target, inNode, edge)
		}
	}
}

func (o *Observable) notifyInNodeRemoved(target *Node, inNode *Node, edge *Edge) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnInNodeRemoved(target, inNode, edge)
		}
	}
}

func (o *Observable) notifyInNodeRemovedFinal(target *Node) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnInNodeRemovedFinal(target)
		}
	}
}

func (o *Observable) notifyOutNodeInserted(target *Node, outNode *Node, edge *Edge) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnOutNodeInserted(target, outNode, edge)
		}
	}
}

func (o *Observable) notifyOutNodeRemoved(target *Node, outNode *Node, edge *Edge) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnOutNodeRemoved(target, outNode, edge)
		}
	}
}

func (o *Observable) notifyOutNodeRemovedFinal(target *Node) {
	for _, observer := range o.observers {
		if observer.IsEnabled() {
			observer.OnOutNodeRemovedFinal(target)
		}
	}
}
