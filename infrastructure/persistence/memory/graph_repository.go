package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domaincfg "github.com/anxornot/QuickQanava/domain/config"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/pkg/errors"
)

// LimitsProvider supplies the topology limits applied to graphs created
// from now on; hot reloaded limits flow in through this hook
type LimitsProvider func() domaincfg.DomainConfig

// graphEntry pairs a container with the lock that serializes access to it.
// The topology engine performs no locking of its own.
type graphEntry struct {
	mu    sync.RWMutex
	graph *topology.Graph
}

// GraphRepository is an in-memory, process-local implementation of the
// graph repository port. Each owner maps to exactly one container.
type GraphRepository struct {
	mu     sync.RWMutex
	graphs map[string]*graphEntry
	limits LimitsProvider
	logger *zap.Logger
}

// NewGraphRepository creates an empty repository
func NewGraphRepository(limits LimitsProvider, logger *zap.Logger) *GraphRepository {
	return &GraphRepository{
		graphs: make(map[string]*graphEntry),
		limits: limits,
		logger: logger,
	}
}

// WithGraph runs fn against the owner's graph under its exclusive lock,
// creating the graph on first use
func (r *GraphRepository) WithGraph(ctx context.Context, ownerID string, fn func(*topology.Graph) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := r.getOrCreate(ownerID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.graph)
}

// ViewGraph runs fn against the owner's graph under its shared lock
func (r *GraphRepository) ViewGraph(ctx context.Context, ownerID string, fn func(*topology.Graph) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	entry, ok := r.graphs[ownerID]
	r.mu.RUnlock()
	if !ok {
		return errors.NewNotFoundError("graph")
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return fn(entry.graph)
}

// Exists reports whether the owner already has a graph
func (r *GraphRepository) Exists(ctx context.Context, ownerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.graphs[ownerID]
	return ok, nil
}

// Delete destroys the owner's graph and everything it owns
func (r *GraphRepository) Delete(ctx context.Context, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.graphs[ownerID]; !ok {
		return errors.NewNotFoundError("graph")
	}
	delete(r.graphs, ownerID)
	r.logger.Info("graph deleted", zap.String("owner_id", ownerID))
	return nil
}

func (r *GraphRepository) getOrCreate(ownerID string) *graphEntry {
	r.mu.RLock()
	entry, ok := r.graphs[ownerID]
	r.mu.RUnlock()
	if ok {
		return entry
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok = r.graphs[ownerID]; ok {
		return entry
	}

	entry = &graphEntry{graph: topology.NewGraph(ownerID, r.limits())}
	r.graphs[ownerID] = entry
	r.logger.Info("graph created", zap.String("owner_id", ownerID))
	return entry
}
