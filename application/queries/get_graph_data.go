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

// GetGraphDataQuery retrieves the whole topology of the owner's graph,
// suitable for rendering or export
type GetGraphDataQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetGraphDataHandler handles the GetGraphDataQuery
type GetGraphDataHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewGetGraphDataHandler creates a new handler instance
func NewGetGraphDataHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *GetGraphDataHandler {
	return &GetGraphDataHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle executes the query
func (h *GetGraphDataHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	dataQuery, ok := query.(GetGraphDataQuery)
	if !ok {
		return nil, errors.NewValidationError("unexpected query type")
	}

	var view GraphDataView
	err := h.graphRepo.ViewGraph(ctx, dataQuery.OwnerID, func(graph *topology.Graph) error {
		view = GraphDataView{
			GraphID:   graph.ID(),
			Nodes:     make([]NodeView, 0, graph.NodeCount()),
			Edges:     make([]EdgeView, 0, graph.EdgeCount()),
			Groups:    make([]GroupView, 0, graph.GroupCount()),
			UpdatedAt: graph.UpdatedAt(),
		}
		for _, node := range graph.Nodes() {
			view.Nodes = append(view.Nodes, newNodeView(node))
		}
		for _, edge := range graph.Edges() {
			view.Edges = append(view.Edges, newEdgeView(edge))
		}
		for _, group := range graph.Groups() {
			view.Groups = append(view.Groups, newGroupView(group))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("graph data assembled",
		zap.String("owner_id", dataQuery.OwnerID),
		zap.Int("nodes", len(view.Nodes)),
		zap.Int("edges", len(view.Edges)),
	)
	return &view, nil
}
