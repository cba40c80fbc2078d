package queries

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/application/queries/bus"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/pkg/common"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// ListNodesQuery retrieves a page of the owner's nodes in insertion order
type ListNodesQuery struct {
	OwnerID  string `json:"owner_id" validate:"required"`
	Page     int    `json:"page" validate:"min=0"`
	PageSize int    `json:"page_size" validate:"min=0,max=100"`
}

// Validate validates the query
func (q ListNodesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListNodesHandler handles the ListNodesQuery
type ListNodesHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewListNodesHandler creates a new handler instance
func NewListNodesHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *ListNodesHandler {
	return &ListNodesHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle executes the query
func (h *ListNodesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	listQuery, ok := query.(ListNodesQuery)
	if !ok {
		return nil, errors.NewValidationError("unexpected query type")
	}

	params := common.DefaultPaginationParams()
	if listQuery.Page > 0 {
		params.Page = listQuery.Page
	}
	if listQuery.PageSize > 0 {
		params.PageSize = listQuery.PageSize
	}

	var result *common.PaginatedResult
	err := h.graphRepo.ViewGraph(ctx, listQuery.OwnerID, func(graph *topology.Graph) error {
		nodes := graph.Nodes()
		total := len(nodes)

		offset := params.CalculateOffset()
		if offset > total {
			offset = total
		}
		end := offset + params.PageSize
		if end > total {
			end = total
		}

		views := make([]NodeView, 0, end-offset)
		for _, node := range nodes[offset:end] {
			views = append(views, newNodeView(node))
		}
		result = common.NewPaginatedResult(views, params.Page, params.PageSize, total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
