package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincfg "github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/pkg/errors"
)

func newTestRepository() *GraphRepository {
	limits := domaincfg.DefaultDomainConfig()
	return NewGraphRepository(func() domaincfg.DomainConfig { return limits }, zap.NewNop())
}

func TestGraphRepository_WithGraphCreatesOnFirstUse(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.WithGraph(ctx, "alice", func(graph *topology.Graph) error {
		_, err := graph.InsertNode()
		return err
	})
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGraphRepository_ViewGraphMissing(t *testing.T) {
	repo := newTestRepository()

	err := repo.ViewGraph(context.Background(), "nobody", func(graph *topology.Graph) error {
		t.Fatal("fn should not be called for a missing graph")
		return nil
	})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
}

func TestGraphRepository_GraphsAreIsolatedPerOwner(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.WithGraph(ctx, "alice", func(graph *topology.Graph) error {
		_, err := graph.InsertNode()
		return err
	}))
	require.NoError(t, repo.WithGraph(ctx, "bob", func(graph *topology.Graph) error {
		return nil
	}))

	require.NoError(t, repo.ViewGraph(ctx, "bob", func(graph *topology.Graph) error {
		assert.Equal(t, 0, graph.NodeCount())
		return nil
	}))
	require.NoError(t, repo.ViewGraph(ctx, "alice", func(graph *topology.Graph) error {
		assert.Equal(t, 1, graph.NodeCount())
		return nil
	}))
}

func TestGraphRepository_Delete(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.WithGraph(ctx, "alice", func(graph *topology.Graph) error {
		return nil
	}))
	require.NoError(t, repo.Delete(ctx, "alice"))

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGraphRepository_ConcurrentMutations(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = repo.WithGraph(ctx, "shared", func(graph *topology.Graph) error {
				_, err := graph.InsertNode()
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, repo.ViewGraph(ctx, "shared", func(graph *topology.Graph) error {
		assert.Equal(t, workers, graph.NodeCount())
		return nil
	}))
}

func TestGraphRepository_ContextCancelled(t *testing.T) {
	repo := newTestRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.WithGraph(ctx, "alice", func(graph *topology.Graph) error {
		t.Fatal("fn should not run once the context is cancelled")
		return nil
	})
	assert.Error(t, err)
}
