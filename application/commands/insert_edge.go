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

// InsertEdgeCommand inserts a directed edge between two member nodes
type InsertEdgeCommand struct {
	OwnerID       string `json:"owner_id" validate:"required"`
	EdgeID        string `json:"edge_id" validate:"required,uuid"`
	SourceID      string `json:"source_id" validate:"required,uuid"`
	DestinationID string `json:"destination_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd InsertEdgeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// InsertEdgeHandler handles the InsertEdgeCommand
type InsertEdgeHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewInsertEdgeHandler creates a new handler instance
func NewInsertEdgeHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *InsertEdgeHandler {
	return &InsertEdgeHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the insert edge command
func (h *InsertEdgeHandler) Handle(ctx context.Context, cmd bus.Command) error {
	insertCmd, ok := cmd.(InsertEdgeCommand)
	if !ok {
		return errors.NewValidationError("unexpected command type")
	}

	edgeID, err := valueobjects.NewEdgeIDFromString(insertCmd.EdgeID)
	if err != nil {
		return err
	}
	sourceID, err := valueobjects.NewNodeIDFromString(insertCmd.SourceID)
	if err != nil {
		return err
	}
	destinationID, err := valueobjects.NewNodeIDFromString(insertCmd.DestinationID)
	if err != nil {
		return err
	}

	err = h.graphRepo.WithGraph(ctx, insertCmd.OwnerID, func(graph *topology.Graph) error {
		if _, err := graph.InsertEdgeWithID(edgeID, sourceID, destinationID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
	if err != nil {
		return err
	}

	h.logger.Debug("edge inserted",
		zap.String("owner_id", insertCmd.OwnerID),
		zap.String("edge_id", insertCmd.EdgeID),
		zap.String("source_id", insertCmd.SourceID),
		zap.String("destination_id", insertCmd.DestinationID),
	)
	return nil
}
