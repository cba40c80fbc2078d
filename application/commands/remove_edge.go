package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/domain/core/valueobjects"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// RemoveEdgeCommand removes an edge from the owner's graph
type RemoveEdgeCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	EdgeID  string `json:"edge_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd RemoveEdgeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// RemoveEdgeHandler handles the RemoveEdgeCommand
type RemoveEdgeHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewRemoveEdgeHandler creates a new handler instance
func NewRemoveEdgeHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *RemoveEdgeHandler {
	return &RemoveEdgeHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the remove edge command
func (h *RemoveEdgeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	removeCmd, ok := cmd.(RemoveEdgeCommand)
	if !ok {
		return errors.NewValidationError("unexpected command type")
	}

	edgeID, err := valueobjects.NewEdgeIDFromString(removeCmd.EdgeID)
	if err != nil {
		return err
	}

	err = h.graphRepo.WithGraph(ctx, removeCmd.OwnerID, func(graph *topology.Graph) error {
		if err := graph.RemoveEdge(edgeID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
	if err != nil {
		return err
	}

	h.logger.Debug("edge removed",
		zap.String("owner_id", removeCmd.OwnerID),
		zap.String("edge_id", removeCmd.EdgeID),
	)
	return nil
}
