package topology

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/pkg/errors"
)

// callLog is shared between probes so that ordering across nodes is visible
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// probe records every notification it receives, tagged with its own label
type probe struct {
	NodeObserverBase
	log   *callLog
	label string
}

func newProbe(log *callLog, label string) *probe {
	p := &probe{log: log, label: label}
	p.SetName(label)
	return p
}

func (p *probe) OnInNodeInserted(target *Node, inNode *Node, edge *Edge) {
	p.log.add("%s:in_inserted", p.label)
}

func (p *probe) OnInNodeRemoved(target *Node, inNode *Node, edge *Edge) {
	p.log.add("%s:in_removed(attached=%t)", p.label, target.hasInEdge(edge))
}

func (p *probe) OnInNodeRemovedFinal(target *Node) {
	p.log.add("%s:in_removed_final", p.label)
}

func (p *probe) OnOutNodeInserted(target *Node, outNode *Node, edge *Edge) {
	p.log.add("%s:out_inserted", p.label)
}

func (p *probe) OnOutNodeRemoved(target *Node, outNode *Node, edge *Edge) {
	p.log.add("%s:out_removed(attached=%t)", p.label, target.hasOutEdge(edge))
}

func (p *probe) OnOutNodeRemovedFinal(target *Node) {
	p.log.add("%s:out_removed_final", p.label)
}

func TestObserver_Defaults(t *testing.T) {
	observer := &NodeObserverBase{}

	assert.True(t, observer.IsEnabled())
	assert.Nil(t, observer.Target())
	assert.Empty(t, observer.Name())

	observer.SetName("audit")
	assert.Equal(t, "audit", observer.Name())

	observer.Disable()
	observer.Disable()
	assert.False(t, observer.IsEnabled())
	observer.Enable()
	observer.Enable()
	assert.True(t, observer.IsEnabled())
}

func TestObserver_AttachDetach(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	node, _ := graph.InsertNode()
	observer := newProbe(&callLog{}, "a")

	require.NoError(t, graph.AttachObserver(node.ID(), observer))
	assert.Same(t, node, observer.Target())
	assert.Equal(t, 1, node.ObserverCount())

	err := graph.AttachObserver(node.ID(), observer)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrObserverAlreadyAttached))

	require.NoError(t, graph.DetachObserver(node.ID(), observer))
	assert.Nil(t, observer.Target())
	assert.Equal(t, 0, node.ObserverCount())

	err = graph.DetachObserver(node.ID(), observer)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrObserverNotAttached))
}

func TestObserver_AttachLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxObserversPerNode = 1
	graph := NewGraph("t", cfg)
	node, _ := graph.InsertNode()
	log := &callLog{}

	require.NoError(t, graph.AttachObserver(node.ID(), newProbe(log, "a")))

	err := graph.AttachObserver(node.ID(), newProbe(log, "b"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrObserverLimitExceeded))
}

func TestObserver_InsertEdgeOrdering(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	log := &callLog{}

	require.NoError(t, graph.AttachObserver(a.ID(), newProbe(log, "a")))
	require.NoError(t, graph.AttachObserver(b.ID(), newProbe(log, "b")))

	_, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)

	// source side is notified before destination side
	assert.Equal(t, []string{"a:out_inserted", "b:in_inserted"}, log.calls)
}

func TestObserver_RemoveEdgeProtocol(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	edge, _ := graph.InsertEdge(a.ID(), b.ID())
	log := &callLog{}

	require.NoError(t, graph.AttachObserver(a.ID(), newProbe(log, "a")))
	require.NoError(t, graph.AttachObserver(b.ID(), newProbe(log, "b")))

	require.NoError(t, graph.RemoveEdge(edge.ID()))

	// edge-context callbacks fire while the edge is still attached, the
	// no-context callbacks only after detachment
	assert.Equal(t, []string{
		"a:out_removed(attached=true)",
		"b:in_removed(attached=true)",
		"a:out_removed_final",
		"b:in_removed_final",
	}, log.calls)
}

func TestObserver_SelfLoop(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	node, _ := graph.InsertNode()
	log := &callLog{}

	require.NoError(t, graph.AttachObserver(node.ID(), newProbe(log, "n")))

	edge, err := graph.InsertEdge(node.ID(), node.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"n:out_inserted", "n:in_inserted"}, log.calls)

	log.calls = nil
	require.NoError(t, graph.RemoveEdge(edge.ID()))
	assert.Equal(t, []string{
		"n:out_removed(attached=true)",
		"n:in_removed(attached=true)",
		"n:out_removed_final",
		"n:in_removed_final",
	}, log.calls)
}

func TestObserver_DisableSuppressesDelivery(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	log := &callLog{}
	observer := newProbe(log, "a")

	require.NoError(t, graph.AttachObserver(a.ID(), observer))

	observer.Disable()
	first, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)
	require.NoError(t, graph.RemoveEdge(first.ID()))
	assert.Empty(t, log.calls)

	// re-enabling resumes delivery for subsequent mutations only, the
	// missed events are not replayed
	observer.Enable()
	_, err = graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"a:out_inserted"}, log.calls)
}

func TestObserver_AttachmentOrderFanOut(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	log := &callLog{}

	first := newProbe(log, "first")
	second := newProbe(log, "second")
	third := newProbe(log, "third")
	second.Disable()

	require.NoError(t, graph.AttachObserver(a.ID(), first))
	require.NoError(t, graph.AttachObserver(a.ID(), second))
	require.NoError(t, graph.AttachObserver(a.ID(), third))

	_, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)

	// disabled observers are skipped, the rest fire in attachment order
	assert.Equal(t, []string{"first:out_inserted", "third:out_inserted"}, log.calls)
}

func TestObserver_RemoveNodeCascade(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	log := &callLog{}

	require.NoError(t, graph.AttachObserver(a.ID(), newProbe(log, "a")))
	require.NoError(t, graph.AttachObserver(b.ID(), newProbe(log, "b")))

	edge, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"a:out_inserted", "b:in_inserted"}, log.calls)

	log.calls = nil
	require.NoError(t, graph.RemoveNode(a.ID()))

	// the incident edge is removed with the full four-callback sequence
	// before the node itself is destroyed
	assert.Equal(t, []string{
		"a:out_removed(attached=true)",
		"b:in_removed(attached=true)",
		"a:out_removed_final",
		"b:in_removed_final",
	}, log.calls)
	assert.False(t, graph.HasNode(a.ID()))
	assert.Equal(t, 0, graph.EdgeCount())

	err = graph.RemoveEdge(edge.ID())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEdgeNotFound))
}

func TestObserver_SubsetOverride(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()

	// NodeObserverBase alone is a valid observer with all hooks no-ops
	observer := &NodeObserverBase{}
	require.NoError(t, graph.AttachObserver(a.ID(), observer))

	edge, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)
	require.NoError(t, graph.RemoveEdge(edge.ID()))
	require.NoError(t, graph.RemoveNode(a.ID()))
}

func TestObserver_DetachedNodeStopsNotifying(t *testing.T) {
	graph := NewGraph("t", config.DefaultDomainConfig())
	a, _ := graph.InsertNode()
	b, _ := graph.InsertNode()
	log := &callLog{}
	observer := newProbe(log, "a")

	require.NoError(t, graph.AttachObserver(a.ID(), observer))
	require.NoError(t, graph.DetachObserver(a.ID(), observer))

	_, err := graph.InsertEdge(a.ID(), b.ID())
	require.NoError(t, err)
	assert.Empty(t, log.calls)
}
