package queries

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	domaincfg "github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/infrastructure/persistence/memory"
	"github.com/anxornot/QuickQanava/pkg/common"
	"github.com/anxornot/QuickQanava/pkg/errors"
)

func newQueryRepo(t *testing.T) ports.GraphRepository {
	t.Helper()
	limits := domaincfg.DefaultDomainConfig()
	return memory.NewGraphRepository(func() domaincfg.DomainConfig { return limits }, zap.NewNop())
}

func seedGraph(t *testing.T, repo ports.GraphRepository, owner string, build func(graph *topology.Graph) error) {
	t.Helper()
	require.NoError(t, repo.WithGraph(context.Background(), owner, build))
}

func TestGetNodeHandler(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewGetNodeHandler(repo, zap.NewNop())

	var nodeID valueobjects.NodeID
	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		src, err := graph.InsertNode()
		if err != nil {
			return err
		}
		dst, err := graph.InsertNode()
		if err != nil {
			return err
		}
		if err := graph.SetNodeLabel(src.ID(), "source"); err != nil {
			return err
		}
		if _, err := graph.InsertEdge(src.ID(), dst.ID()); err != nil {
			return err
		}
		nodeID = src.ID()
		return nil
	})

	result, err := handler.Handle(context.Background(), GetNodeQuery{
		OwnerID: "alice",
		NodeID:  nodeID.String(),
	})
	require.NoError(t, err)

	view, ok := result.(*NodeView)
	require.True(t, ok)
	assert.Equal(t, nodeID.String(), view.ID)
	assert.Equal(t, "source", view.Label)
	assert.Equal(t, 1, view.OutDegree)
	assert.Equal(t, 0, view.InDegree)
	assert.Len(t, view.OutEdgeIDs, 1)
}

func TestGetNodeHandler_Missing(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewGetNodeHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		_, err := graph.InsertNode()
		return err
	})

	_, err := handler.Handle(context.Background(), GetNodeQuery{
		OwnerID: "alice",
		NodeID:  valueobjects.NewNodeID().String(),
	})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNodeNotFound))
}

func TestGetGraphDataHandler(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewGetGraphDataHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		a, err := graph.InsertNode()
		if err != nil {
			return err
		}
		b, err := graph.InsertNode()
		if err != nil {
			return err
		}
		if _, err := graph.InsertEdge(a.ID(), b.ID()); err != nil {
			return err
		}
		group, err := graph.InsertGroup()
		if err != nil {
			return err
		}
		return graph.GroupNode(group.ID(), a.ID())
	})

	result, err := handler.Handle(context.Background(), GetGraphDataQuery{OwnerID: "alice"})
	require.NoError(t, err)

	view, ok := result.(*GraphDataView)
	require.True(t, ok)
	assert.Len(t, view.Nodes, 2)
	assert.Len(t, view.Edges, 1)
	assert.Len(t, view.Groups, 1)
	assert.Equal(t, view.Nodes[0].ID, view.Groups[0].NodeIDs[0])
	assert.Equal(t, view.Groups[0].ID, view.Nodes[0].GroupID)
}

func TestGetGraphDataHandler_EmptyGraph(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewGetGraphDataHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error { return nil })

	result, err := handler.Handle(context.Background(), GetGraphDataQuery{OwnerID: "alice"})
	require.NoError(t, err)

	view := result.(*GraphDataView)
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
	assert.Empty(t, view.Groups)
}

func TestListNodesHandler_Pagination(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewListNodesHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		for i := 0; i < 5; i++ {
			if _, err := graph.InsertNode(); err != nil {
				return err
			}
		}
		return nil
	})

	result, err := handler.Handle(context.Background(), ListNodesQuery{
		OwnerID:  "alice",
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)

	page, ok := result.(*common.PaginatedResult)
	require.True(t, ok)
	views, ok := page.Items.([]NodeView)
	require.True(t, ok)
	assert.Len(t, views, 2)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestListNodesHandler_LastPagePartial(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewListNodesHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		for i := 0; i < 5; i++ {
			if _, err := graph.InsertNode(); err != nil {
				return err
			}
		}
		return nil
	})

	result, err := handler.Handle(context.Background(), ListNodesQuery{
		OwnerID:  "alice",
		Page:     3,
		PageSize: 2,
	})
	require.NoError(t, err)

	page := result.(*common.PaginatedResult)
	views := page.Items.([]NodeView)
	assert.Len(t, views, 1)
}

func TestGetGraphStatsHandler(t *testing.T) {
	repo := newQueryRepo(t)
	handler := NewGetGraphStatsHandler(repo, zap.NewNop())

	seedGraph(t, repo, "alice", func(graph *topology.Graph) error {
		a, err := graph.InsertNode()
		if err != nil {
			return err
		}
		b, err := graph.InsertNode()
		if err != nil {
			return err
		}
		if _, err := graph.InsertEdge(a.ID(), b.ID()); err != nil {
			return err
		}
		if _, err := graph.InsertEdge(a.ID(), a.ID()); err != nil {
			return err
		}
		_, err = graph.InsertGroup()
		return err
	})

	result, err := handler.Handle(context.Background(), GetGraphStatsQuery{OwnerID: "alice"})
	require.NoError(t, err)

	view, ok := result.(*GraphStatsView)
	require.True(t, ok)
	assert.Equal(t, 2, view.NodeCount)
	assert.Equal(t, 2, view.EdgeCount)
	assert.Equal(t, 1, view.GroupCount)
	assert.Equal(t, 1, view.SelfLoops)
	assert.Equal(t, 3, view.MaxDegree)
}

func TestQueryValidation(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
	}{
		{"get node without owner", GetNodeQuery{NodeID: valueobjects.NewNodeID().String()}},
		{"get node with bad id", GetNodeQuery{OwnerID: "alice", NodeID: "nope"}},
		{"graph data without owner", GetGraphDataQuery{}},
		{"list nodes oversized page", ListNodesQuery{OwnerID: "alice", PageSize: 500}},
		{"stats without owner", GetGraphStatsQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.query.Validate())
		})
	}
}
