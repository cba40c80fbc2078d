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

// InsertGroupCommand inserts an empty group into the owner's graph
type InsertGroupCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required,uuid"`
	Label   string `json:"label" validate:"max=200"`
}

// Validate validates the command
func (cmd InsertGroupCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// RemoveGroupCommand removes a group, releasing its member nodes
type RemoveGroupCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd RemoveGroupCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// GroupNodeCommand adds a node to a group
type GroupNodeCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required,uuid"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd GroupNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// UngroupNodeCommand removes a node from a group without destroying it
type UngroupNodeCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
	GroupID string `json:"group_id" validate:"required,uuid"`
	NodeID  string `json:"node_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd UngroupNodeCommand) Validate() error {
	return utils.ValidateStruct(cmd)
}

// GroupHandler handles every group membership command
type GroupHandler struct {
	graphRepo ports.GraphRepository
	eventBus  ports.EventBus
	logger    *zap.Logger
}

// NewGroupHandler creates a new handler instance
func NewGroupHandler(graphRepo ports.GraphRepository, eventBus ports.EventBus, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		graphRepo: graphRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes a group command
func (h *GroupHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch groupCmd := cmd.(type) {
	case InsertGroupCommand:
		return h.insertGroup(ctx, groupCmd)
	case RemoveGroupCommand:
		return h.removeGroup(ctx, groupCmd)
	case GroupNodeCommand:
		return h.groupNode(ctx, groupCmd)
	case UngroupNodeCommand:
		return h.ungroupNode(ctx, groupCmd)
	default:
		return errors.NewValidationError("unexpected command type")
	}
}

func (h *GroupHandler) insertGroup(ctx context.Context, cmd InsertGroupCommand) error {
	groupID, err := valueobjects.NewGroupIDFromString(cmd.GroupID)
	if err != nil {
		return err
	}

	return h.graphRepo.WithGraph(ctx, cmd.OwnerID, func(graph *topology.Graph) error {
		if _, err := graph.InsertGroupWithID(groupID); err != nil {
			return err
		}
		if cmd.Label != "" {
			if err := graph.SetGroupLabel(groupID, cmd.Label); err != nil {
				return err
			}
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
}

func (h *GroupHandler) removeGroup(ctx context.Context, cmd RemoveGroupCommand) error {
	groupID, err := valueobjects.NewGroupIDFromString(cmd.GroupID)
	if err != nil {
		return err
	}

	return h.graphRepo.WithGraph(ctx, cmd.OwnerID, func(graph *topology.Graph) error {
		if err := graph.RemoveGroup(groupID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
}

func (h *GroupHandler) groupNode(ctx context.Context, cmd GroupNodeCommand) error {
	groupID, err := valueobjects.NewGroupIDFromString(cmd.GroupID)
	if err != nil {
		return err
	}
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return err
	}

	return h.graphRepo.WithGraph(ctx, cmd.OwnerID, func(graph *topology.Graph) error {
		if err := graph.GroupNode(groupID, nodeID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
}

func (h *GroupHandler) ungroupNode(ctx context.Context, cmd UngroupNodeCommand) error {
	groupID, err := valueobjects.NewGroupIDFromString(cmd.GroupID)
	if err != nil {
		return err
	}
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return err
	}

	return h.graphRepo.WithGraph(ctx, cmd.OwnerID, func(graph *topology.Graph) error {
		if err := graph.UngroupNode(groupID, nodeID); err != nil {
			return err
		}
		return publishEvents(ctx, h.eventBus, h.logger, graph)
	})
}
