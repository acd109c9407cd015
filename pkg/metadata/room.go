package metadata

import "fmt"

// RoomType classifies a lab room. "other" rooms carry a free-text
// custom type alongside.
type RoomType string

const (
	RoomComputer RoomType = "computer"
	RoomPhysics  RoomType = "physics"
	RoomBiology  RoomType = "biology"
	RoomOther    RoomType = "other"
)

func NewRoomType(value string) (RoomType, error) {
	roomType := RoomType(value)
	if !roomType.isValid() {
		return "", fmt.Errorf("invalid room type: %s", value)
	}
	return roomType, nil
}

func (t RoomType) isValid() bool {
	switch t {
	case RoomComputer, RoomPhysics, RoomBiology, RoomOther:
		return true
	default:
		return false
	}
}

func (t RoomType) String() string {
	return string(t)
}

// ContainerType classifies a container. Table-type containers are
// presented as stations with fixed component slots; that is a
// presentation concern, the engine treats all types alike.
type ContainerType string

const (
	ContainerTable    ContainerType = "table"
	ContainerCupboard ContainerType = "cupboard"
	ContainerShelf    ContainerType = "shelf"
)

func NewContainerType(value string) (ContainerType, error) {
	containerType := ContainerType(value)
	if !containerType.isValid() {
		return "", fmt.Errorf("invalid container type: %s", value)
	}
	return containerType, nil
}

func (t ContainerType) isValid() bool {
	switch t {
	case ContainerTable, ContainerCupboard, ContainerShelf:
		return true
	default:
		return false
	}
}

func (t ContainerType) String() string {
	return string(t)
}
