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

// RemoveNodeCommand removes a node and every edge touching it
type RemoveNodeCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd RemoveNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// RemoveNodeHandler handles the RemoveNodeCommand
type RemoveNodeHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewRemoveNodeHandler creates a new handler instance
func NewRemoveNodeHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *RemoveNodeHandler {
	return &RemoveNodeHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the remove node command
func (h *RemoveNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	removeCmd, ok := cmd.(RemoveNodeCommand)
	if !ok {
		return errors.NewValidationError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(removeCmd.NodeID)
	if err != nil {
		return err
	}

	err = h.graphRepo.WithGraph(ctx, removeCmd.OwnerID, func(graph *topology.Graph) error {
		if err := graph.RemoveNode(nodeID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
	if err != nil {
		return err
	}

	h.logger.Debug("node removed",
		zap.String("owner_id", removeCmd.OwnerID),
		zap.String("node_id", removeCmd.NodeID),
	)
	return nil
}
