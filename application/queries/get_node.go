package queries

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// GetNodeQuery retrieves a single node with its adjacency
type GetNodeQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
}

// Validate validates the query
func (q GetNodeQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetNodeHandler handles the GetNodeQuery
type GetNodeHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewGetNodeHandler creates a new handler instance
func NewGetNodeHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *GetNodeHandler {
	return &GetNodeHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle executes the query
func (h *GetNodeHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	getQuery, ok := query.(GetNodeQuery)
	if !ok {
		return nil, errors.NewValidationError("unexpected query type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(getQuery.NodeID)
	if err != nil {
		return nil, err
	}

	var view NodeView
	err = h.graphRepo.ViewGraph(ctx, getQuery.OwnerID, func(graph *topology.Graph) error {
		node, err := graph.GetNode(nodeID)
		if err != nil {
			return err
		}
		view = newNodeView(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
