package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// NodeID is a value object representing a unique node identifier
// Value objects are immutable and have no identity beyond their value
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID {
	return NodeID{value: uuid.New().String()}
}

// NewNodeIDFromString creates a NodeID from an existing string
func NewNodeIDFromString(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	if !isValidUUID(id) {
		return NodeID{}, errors.New("node ID must be a valid UUID")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	value, err := unquote(data)
	if err != nil {
		return errors.New("NodeID must be a string")
	}
	id.value = value
	return nil
}

// EdgeID is a value object representing a unique edge identifier
type EdgeID struct {
	value string
}

// NewEdgeID creates a new random EdgeID
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

// NewEdgeIDFromString creates an EdgeID from an existing string
func NewEdgeIDFromString(id string) (EdgeID, error) {
	if id == "" {
		return EdgeID{}, errors.New("edge ID cannot be empty")
	}
	if !isValidUUID(id) {
		return EdgeID{}, errors.New("edge ID must be a valid UUID")
	}
	return EdgeID{value: id}, nil
}

// String returns the string representation of the EdgeID
func (id EdgeID) String() string {
	return id.value
}

// Equals checks if two EdgeIDs are equal
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// IsZero checks if the EdgeID is the zero value
func (id EdgeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id EdgeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *EdgeID) UnmarshalJSON(data []byte) error {
	value, err := unquote(data)
	if err != nil {
		return errors.New("EdgeID must be a string")
	}
	id.value = value
	return nil
}

// GroupID is a value object representing a unique group identifier
type GroupID struct {
	value string
}

// NewGroupID creates a new random GroupID
func NewGroupID() GroupID {
	return GroupID{value: uuid.New().String()}
}

// NewGroupIDFromString creates a GroupID from an existing string
func NewGroupIDFromString(id string) (GroupID, error) {
	if id == "" {
		return GroupID{}, errors.New("group ID cannot be empty")
	}
	if !isValidUUID(id) {
		return GroupID{}, errors.New("group ID must be a valid UUID")
	}
	return GroupID{value: id}, nil
}

// String returns the string representation of the GroupID
func (id GroupID) String() string {
	return id.value
}

// Equals checks if two GroupIDs are equal
func (id GroupID) Equals(other GroupID) bool {
	return id.value == other.value
}

// IsZero checks if the GroupID is the zero value
func (id GroupID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id GroupID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *GroupID) UnmarshalJSON(data []byte) error {
	value, err := unquote(data)
	if err != nil {
		return errors.New("GroupID must be a string")
	}
	id.value = value
	return nil
}

// unquote strips the surrounding quotes from a JSON string literal
func unquote(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", errors.New("not a JSON string")
	}
	return string(data[1 : len(data)-1]), nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
