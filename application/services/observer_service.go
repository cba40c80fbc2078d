package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/observability"
)

// Observer kinds the service knows how to construct
const (
	ObserverKindAudit   = "audit"
	ObserverKindMetrics = "metrics"
)

// AuditObserver logs every adjacency notification on the node it watches
type AuditObserver struct {
	topology.NodeObserverBase
	logger *zap.Logger
}

// NewAuditObserver creates an observer logging through the given logger
func NewAuditObserver(logger *zap.Logger) *AuditObserver {
	return &AuditObserver{logger: logger}
}

func (o *AuditObserver) OnInNodeInserted(target *topology.Node, inNode *topology.Node, edge *topology.Edge) {
	o.logger.Info("in edge inserted",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
		zap.String("in_node_id", inNode.ID().String()),
		zap.String("edge_id", edge.ID().String()),
	)
}

func (o *AuditObserver) OnInNodeRemoved(target *topology.Node, inNode *topology.Node, edge *topology.Edge) {
	o.logger.Info("in edge removing",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
		zap.String("in_node_id", inNode.ID().String()),
		zap.String("edge_id", edge.ID().String()),
	)
}

func (o *AuditObserver) OnInNodeRemovedFinal(target *topology.Node) {
	o.logger.Info("in edge removed",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
	)
}

func (o *AuditObserver) OnOutNodeInserted(target *topology.Node, outNode *topology.Node, edge *topology.Edge) {
	o.logger.Info("out edge inserted",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
		zap.String("out_node_id", outNode.ID().String()),
		zap.String("edge_id", edge.ID().String()),
	)
}

func (o *AuditObserver) OnOutNodeRemoved(target *topology.Node, outNode *topology.Node, edge *topology.Edge) {
	o.logger.Info("out edge removing",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
		zap.String("out_node_id", outNode.ID().String()),
		zap.String("edge_id", edge.ID().String()),
	)
}

func (o *AuditObserver) OnOutNodeRemovedFinal(target *topology.Node) {
	o.logger.Info("out edge removed",
		zap.String("observer", o.Name()),
		zap.String("node_id", target.ID().String()),
	)
}

// ObserverInfo describes one registered observer
type ObserverInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	NodeID  string `json:"node_id"`
	Enabled bool   `json:"enabled"`
}

type registration struct {
	info     ObserverInfo
	nodeID   valueobjects.NodeID
	observer topology.NodeObserver
}

// ObserverService manages named observers over the graph repository.
// Names are unique per owner so HTTP clients can address an observer
// without holding a reference to it.
type ObserverService struct {
	graphRepo ports.GraphRepository
	metrics   *observability.Metrics
	logger    *zap.Logger

	mu       sync.Mutex
	registry map[string]map[string]*registration
}

// NewObserverService creates a new observer service
func NewObserverService(graphRepo ports.GraphRepository, metrics *observability.Metrics, logger *zap.Logger) *ObserverService {
	return &ObserverService{
		graphRepo: graphRepo,
		metrics:   metrics,
		logger:    logger,
		registry:  make(map[string]map[string]*registration),
	}
}

// Attach constructs an observer of the given kind and attaches it to the
// node under a unique name
func (s *ObserverService) Attach(ctx context.Context, ownerID, nodeID, name, kind string) error {
	if name == "" {
		return errors.NewValidationError("observer name is required")
	}

	id, err := valueobjects.NewNodeIDFromString(nodeID)
	if err != nil {
		return err
	}

	observer, err := s.buildObserver(kind)
	if err != nil {
		return err
	}
	observer.SetName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.registry[ownerID]
	if owned == nil {
		owned = make(map[string]*registration)
		s.registry[ownerID] = owned
	}
	if _, exists := owned[name]; exists {
		return errors.NewConflictError(fmt.Sprintf("observer %q already registered", name))
	}

	err = s.graphRepo.WithGraph(ctx, ownerID, func(graph *topology.Graph) error {
		return graph.AttachObserver(id, observer)
	})
	if err != nil {
		return err
	}

	owned[name] = &registration{
		info: ObserverInfo{
			Name:    name,
			Kind:    kind,
			NodeID:  nodeID,
			Enabled: true,
		},
		nodeID:   id,
		observer: observer,
	}

	s.logger.Info("observer attached",
		zap.String("owner_id", ownerID),
		zap.String("node_id", nodeID),
		zap.String("name", name),
		zap.String("kind", kind),
	)
	return nil
}

// Detach removes the named observer from its node and forgets it
func (s *ObserverService) Detach(ctx context.Context, ownerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.lookup(ownerID, name)
	if err != nil {
		return err
	}

	err = s.graphRepo.WithGraph(ctx, ownerID, func(graph *topology.Graph) error {
		detachErr := graph.DetachObserver(reg.nodeID, reg.observer)
		// the node may have been removed since attachment, which already
		// discarded the attachment
		if detachErr != nil && !errors.IsDomainError(detachErr) {
			return detachErr
		}
		return nil
	})
	if err != nil {
		return err
	}

	delete(s.registry[ownerID], name)
	s.logger.Info("observer detached",
		zap.String("owner_id", ownerID),
		zap.String("name", name),
	)
	return nil
}

// Enable resumes callback delivery for the named observer
func (s *ObserverService) Enable(ctx context.Context, ownerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.lookup(ownerID, name)
	if err != nil {
		return err
	}
	reg.observer.Enable()
	reg.info.Enabled = true
	return nil
}

// Disable suspends callback delivery for the named observer
func (s *ObserverService) Disable(ctx context.Context, ownerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := s.lookup(ownerID, name)
	if err != nil {
		return err
	}
	reg.observer.Disable()
	reg.info.Enabled = false
	return nil
}

// List returns the owner's registered observers sorted by name
func (s *ObserverService) List(ctx context.Context, ownerID string) []ObserverInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.registry[ownerID]
	result := make([]ObserverInfo, 0, len(owned))
	for _, reg := range owned {
		reg.info.Enabled = reg.observer.IsEnabled()
		result = append(result, reg.info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *ObserverService) lookup(ownerID, name string) (*registration, error) {
	reg, ok := s.registry[ownerID][name]
	if !ok {
		return nil, errors.ErrObserverNotAttached.WithDetail("name", name)
	}
	return reg, nil
}

func (s *ObserverService) buildObserver(kind string) (topology.NodeObserver, error) {
	switch kind {
	case ObserverKindAudit, "":
		return NewAuditObserver(s.logger), nil
	case ObserverKindMetrics:
		return observability.NewMetricsObserver(s.metrics), nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown observer kind %q", kind))
	}
}
