package queries

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// GetGraphStatsQuery retrieves summary statistics for the owner's graph
type GetGraphStatsQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate validates the query
func (q GetGraphStatsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetGraphStatsHandler handles the GetGraphStatsQuery
type GetGraphStatsHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewGetGraphStatsHandler creates a new handler instance
func NewGetGraphStatsHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *GetGraphStatsHandler {
	return &GetGraphStatsHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle executes the query
func (h *GetGraphStatsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	statsQuery, ok := query.(GetGraphStatsQuery)
	if !ok {
		return nil, errors.NewValidationError("unexpected query type")
	}

	var view GraphStatsView
	err := h.graphRepo.ViewGraph(ctx, statsQuery.OwnerID, func(graph *topology.Graph) error {
		view = GraphStatsView{
			GraphID:    graph.ID(),
			NodeCount:  graph.NodeCount(),
			EdgeCount:  graph.EdgeCount(),
			GroupCount: graph.GroupCount(),
			CreatedAt:  graph.CreatedAt(),
			UpdatedAt:  graph.UpdatedAt(),
		}
		for _, edge := range graph.Edges() {
			if edge.IsSelfLoop() {
				view.SelfLoops++
			}
		}
		for _, node := range graph.Nodes() {
			if degree := node.Degree(); degree > view.MaxDegree {
				view.MaxDegree = degree
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
