package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincfg "github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/infrastructure/persistence/memory"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/observability"
)

type observerFixture struct {
	service *ObserverService
	repo    *memory.GraphRepository
	nodeID  valueobjects.NodeID
}

func newObserverFixture(t *testing.T) *observerFixture {
	t.Helper()
	limits := domaincfg.DefaultDomainConfig()
	logger := zap.NewNop()
	repo := memory.NewGraphRepository(func() domaincfg.DomainConfig { return limits }, logger)

	var nodeID valueobjects.NodeID
	err := repo.WithGraph(context.Background(), "alice", func(graph *topology.Graph) error {
		node, err := graph.InsertNode()
		if err != nil {
			return err
		}
		nodeID = node.ID()
		return nil
	})
	require.NoError(t, err)

	return &observerFixture{
		service: NewObserverService(repo, observability.NewMetrics(), logger),
		repo:    repo,
		nodeID:  nodeID,
	}
}

func TestObserverService_AttachAndList(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))

	infos := f.service.List(ctx, "alice")
	require.Len(t, infos, 1)
	assert.Equal(t, "watcher", infos[0].Name)
	assert.Equal(t, ObserverKindAudit, infos[0].Kind)
	assert.Equal(t, f.nodeID.String(), infos[0].NodeID)
	assert.True(t, infos[0].Enabled)

	err := f.repo.ViewGraph(ctx, "alice", func(graph *topology.Graph) error {
		node, err := graph.GetNode(f.nodeID)
		if err != nil {
			return err
		}
		assert.Equal(t, 1, node.ObserverCount())
		return nil
	})
	require.NoError(t, err)
}

func TestObserverService_AttachDefaultsToAudit(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ""))

	infos := f.service.List(ctx, "alice")
	require.Len(t, infos, 1)
	assert.Equal(t, "", infos[0].Kind)
}

func TestObserverService_DuplicateName(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))

	err := f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindMetrics)
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}

func TestObserverService_UnknownKind(t *testing.T) {
	f := newObserverFixture(t)

	err := f.service.Attach(context.Background(), "alice", f.nodeID.String(), "watcher", "tracer")
	require.Error(t, err)
}

func TestObserverService_AttachToMissingNode(t *testing.T) {
	f := newObserverFixture(t)

	err := f.service.Attach(context.Background(), "alice", valueobjects.NewNodeID().String(), "watcher", ObserverKindAudit)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNodeNotFound))
}

func TestObserverService_Detach(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))
	require.NoError(t, f.service.Detach(ctx, "alice", "watcher"))

	assert.Empty(t, f.service.List(ctx, "alice"))

	err := f.repo.ViewGraph(ctx, "alice", func(graph *topology.Graph) error {
		node, err := graph.GetNode(f.nodeID)
		if err != nil {
			return err
		}
		assert.Equal(t, 0, node.ObserverCount())
		return nil
	})
	require.NoError(t, err)
}

func TestObserverService_DetachAfterNodeRemoval(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))

	err := f.repo.WithGraph(ctx, "alice", func(graph *topology.Graph) error {
		return graph.RemoveNode(f.nodeID)
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Detach(ctx, "alice", "watcher"))
	assert.Empty(t, f.service.List(ctx, "alice"))
}

func TestObserverService_DetachUnknown(t *testing.T) {
	f := newObserverFixture(t)

	err := f.service.Detach(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrObserverNotAttached))
}

func TestObserverService_EnableDisable(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))

	require.NoError(t, f.service.Disable(ctx, "alice", "watcher"))
	infos := f.service.List(ctx, "alice")
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Enabled)

	require.NoError(t, f.service.Enable(ctx, "alice", "watcher"))
	infos = f.service.List(ctx, "alice")
	assert.True(t, infos[0].Enabled)
}

func TestObserverService_OwnersAreIsolated(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "watcher", ObserverKindAudit))

	assert.Empty(t, f.service.List(ctx, "bob"))
	err := f.service.Detach(ctx, "bob", "watcher")
	require.Error(t, err)
}

func TestObserverService_ListSortedByName(t *testing.T) {
	f := newObserverFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "zeta", ObserverKindAudit))
	require.NoError(t, f.service.Attach(ctx, "alice", f.nodeID.String(), "alpha", ObserverKindMetrics))

	infos := f.service.List(ctx, "alice")
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "zeta", infos[1].Name)
}
