package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/anxornot/QuickQanava/application/commands/bus"
	"github.com/anxornot/QuickQanava/application/ports"
	"github.com/anxornot/QuickQanava/domain/core/topology"
	"github.com/anxornot/QuickQanava/pkg/errors"
	"github.com/anxornot/QuickQanava/pkg/utils"
)

// ClearGraphCommand removes every node, edge and group from the owner's graph
type ClearGraphCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate validates the command
func (cmd ClearGraphCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// ClearGraphHandler handles the ClearGraphCommand
type ClearGraphHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewClearGraphHandler creates a new handler instance
func NewClearGraphHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *ClearGraphHandler {
	return &ClearGraphHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the clear graph command
func (h *ClearGraphHandler) Handle(ctx context.Context, cmd bus.Command) error {
	clearCmd, ok := cmd.(ClearGraphCommand)
	if !ok {
		return errors.NewValidationError("unexpected command type")
	}

	err := h.graphRepo.WithGraph(ctx, clearCmd.OwnerID, func(graph *topology.Graph) error {
		graph.Clear()
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
	if err != nil {
		return err
	}

	h.logger.Info("graph cleared", zap.String("owner_id", clearCmd.OwnerID))
	return nil
}
