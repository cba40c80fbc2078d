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

// SetNodeLabelCommand updates a node's display label
type SetNodeLabelCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
	Label   string `json:"label" validate:"max=200"`
}

// Validate validates the command
func (cmd SetNodeLabelCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// SetGroupLabelCommand updates a group's display label
type SetGroupLabelCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required,uuid"`
	Label   string `json:"label" validate:"max=200"`
}

// Validate validates the command
func (cmd SetGroupLabelCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// LabelHandler handles label update commands
type LabelHandler struct {
	graphRepo ports.GraphRepository
	logger    *zap.Logger
}

// NewLabelHandler creates a new handler instance
func NewLabelHandler(graphRepo ports.GraphRepository, logger *zap.Logger) *LabelHandler {
	return &LabelHandler{
		graphRepo: graphRepo,
		logger:    logger,
	}
}

// Handle executes a label command
func (h *LabelHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch labelCmd := cmd.(type) {
	case SetNodeLabelCommand:
		nodeID, err := valueobjects.NewNodeIDFromString(labelCmd.NodeID)
		if err != nil {
			return err
		}
		return h.graphRepo.WithGraph(ctx, labelCmd.OwnerID, func(graph *topology.Graph) error {
			return graph.SetNodeLabel(nodeID, labelCmd.Label)
		})
	case SetGroupLabelCommand:
		groupID, err := valueobjects.NewGroupIDFromString(labelCmd.GroupID)
		if err != nil {
			return err
		}
		return h.graphRepo.WithGraph(ctx, labelCmd.OwnerID, func(graph *topology.Graph) error {
			return graph.SetGroupLabel(groupID, labelCmd.Label)
		})
	default:
		return errors.NewValidationError("unexpected command type")
	}
}
