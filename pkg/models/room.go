package models

// Room is the root aggregate: containers and items have no existence
// outside the room that owns them. Container order is meaningful and
// preserved as stored.
type Room struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	CustomType string      `json:"customType,omitempty"`
	Capacity   int         `json:"capacity"`
	Containers []Container `json:"containers"`
}

type Container struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Items    []Item   `json:"items"`
	Position Position `json:"position"`
}

// Position is the container's grid coordinate inside its room.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (r Room) Clone() Room {
	out := r
	out.Containers = make([]Container, len(r.Containers))
	for i, c := range r.Containers {
		out.Containers[i] = c.Clone()
	}
	return out
}

func (c Container) Clone() Container {
	out := c
	out.Items = make([]Item, len(c.Items))
	for i, it := range c.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

// CloneRooms deep-copies a room collection so snapshots never share
// slices with the canonical state.
func CloneRooms(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}
