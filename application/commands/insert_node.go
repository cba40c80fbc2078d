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

// InsertNodeCommand inserts a node into the owner's graph. The node
// identity is chosen by the caller so the result can be addressed without
// a return channel through the bus.
type InsertNodeCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
	Label   string `json:"label" validate:"max=200"`
}

// Validate validates the command
func (cmd InsertNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// InsertNodeHandler handles the InsertNodeCommand
type InsertNodeHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewInsertNodeHandler creates a new handler instance
func NewInsertNodeHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *InsertNodeHandler {
	return &InsertNodeHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the insert node command
func (h *InsertNodeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	insertCmd, ok := cmd.(InsertNodeCommand)
	if !ok {
		return errors.NewValidationError("unexpected command type")
	}

	nodeID, err := valueobjects.NewNodeIDFromString(insertCmd.NodeID)
	if err != nil {
		return err
	}

	err = h.graphRepo.WithGraph(ctx, insertCmd.OwnerID, func(graph *topology.Graph) error {
		if _, err := graph.InsertNodeWithID(nodeID); err != nil {
			return err
		}
		if insertCmd.Label != "" {
			if err := graph.SetNodeLabel(nodeID, insertCmd.Label); err != nil {
				return err
			}
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
	if err != nil {
		return err
	}

	h.logger.Debug("node inserted",
		zap.String("owner_id", insertCmd.OwnerID),
		zap.String("node_id", insertCmd.NodeID),
	)
	return nil
}
