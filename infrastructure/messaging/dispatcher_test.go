package messaging

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/domain/events"
)

type recordingHandler struct {
	accept string
	seen   []string
	fail   bool
}

func (h *recordingHandler) Handle(ctx context.Context, event events.DomainEvent) error {
	h.seen = append(h.seen, event.GetEventType())
	if h.fail {
		return fmt.Errorf("handler failure")
	}
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.accept == "" || h.accept == eventType
}

func TestEventDispatcher_PublishRoutesByType(t *testing.T) {
	dispatcher := NewEventDispatcher(zap.NewNop())

	nodeHandler := &recordingHandler{accept: "topology.node_inserted"}
	edgeHandler := &recordingHandler{accept: "topology.edge_inserted"}
	require.NoError(t, dispatcher.Subscribe("topology.node_inserted", nodeHandler))
	require.NoError(t, dispatcher.Subscribe("topology.edge_inserted", edgeHandler))

	event := events.NewNodeInserted(valueobjects.NewNodeID(), "", time.Now())
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	assert.Equal(t, []string{"topology.node_inserted"}, nodeHandler.seen)
	assert.Empty(t, edgeHandler.seen)
}

func TestEventDispatcher_WildcardReceivesEverything(t *testing.T) {
	dispatcher := NewEventDispatcher(zap.NewNop())

	all := &recordingHandler{}
	require.NoError(t, dispatcher.Subscribe(WildcardEventType, all))

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewNodeInserted(valueobjects.NewNodeID(), "a", time.Now())))
	require.NoError(t, dispatcher.Publish(ctx, events.NewGroupInserted(valueobjects.NewGroupID(), "g", time.Now())))

	assert.Equal(t, []string{"topology.node_inserted", "topology.group_inserted"}, all.seen)
}

func TestEventDispatcher_HandlerErrorsAreNotPropagated(t *testing.T) {
	dispatcher := NewEventDispatcher(zap.NewNop())

	failing := &recordingHandler{fail: true}
	healthy := &recordingHandler{}
	require.NoError(t, dispatcher.Subscribe("topology.node_inserted", failing))
	require.NoError(t, dispatcher.Subscribe("topology.node_inserted", healthy))

	err := dispatcher.Publish(context.Background(), events.NewNodeInserted(valueobjects.NewNodeID(), "", time.Now()))
	require.NoError(t, err)

	assert.Len(t, failing.seen, 1)
	assert.Len(t, healthy.seen, 1)
}

func TestEventDispatcher_PublishBatchPreservesOrder(t *testing.T) {
	dispatcher := NewEventDispatcher(zap.NewNop())

	all := &recordingHandler{}
	require.NoError(t, dispatcher.Subscribe(WildcardEventType, all))

	nodeID := valueobjects.NewNodeID()
	batch := []events.DomainEvent{
		events.NewNodeInserted(nodeID, "", time.Now()),
		events.NewNodeRemoved(nodeID, nil, time.Now()),
	}
	require.NoError(t, dispatcher.PublishBatch(context.Background(), batch))

	assert.Equal(t, []string{"topology.node_inserted", "topology.node_removed"}, all.seen)
}

func TestEventDispatcher_Unsubscribe(t *testing.T) {
	dispatcher := NewEventDispatcher(zap.NewNop())

	handler := &recordingHandler{}
	require.NoError(t, dispatcher.Subscribe("topology.node_inserted", handler))
	require.NoError(t, dispatcher.Unsubscribe("topology.node_inserted", handler))

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewNodeInserted(valueobjects.NewNodeID(), "", time.Now())))
	assert.Empty(t, handler.seen)
}
