package observability

import (
	"github.com/anxornot/QuickQanava/domain/core/topology"
)

// MetricsObserver counts adjacency notifications on the node it watches.
// Attach one per node of interest; the counters are shared through the
// Metrics registry.
type MetricsObserver struct {
	topology.NodeObserverBase
	metrics *Metrics
}

// NewMetricsObserver creates an observer reporting into the given registry
func NewMetricsObserver(metrics *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: metrics}
}

func (o *MetricsObserver) OnInNodeInserted(target *topology.Node, inNode *topology.Node, edge *topology.Edge) {
	o.metrics.CountObserverCallback("in_node_inserted")
}

func (o *MetricsObserver) OnInNodeRemoved(target *topology.Node, inNode *topology.Node, edge *topology.Edge) {
	o.metrics.CountObserverCallback("in_node_removed")
}

func (o *MetricsObserver) OnInNodeRemovedFinal(target *topology.Node) {
	o.metrics.CountObserverCallback("in_node_removed_final")
}

func (o *MetricsObserver) OnOutNodeInserted(target *topology.Node, outNode *topology.Node, edge *topology.Edge) {
	o.metrics.CountObserverCallback("out_node_inserted")
}

func (o *MetricsObserver) OnOutNodeRemoved(target *topology.Node, outNode *topology.Node, edge *topology.Edge) {
	o.metrics.CountObserverCallback("out_node_removed")
}

func (o *MetricsObserver) OnOutNodeRemovedFinal(target *topology.Node) {
	o.metrics.CountObserverCallback("out_node_removed_final")
}
