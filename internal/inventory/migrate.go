package inventory

import (
	"labhouse/pkg/metadata"
	"labhouse/pkg/models"
)

// MigrateRooms upgrades snapshots written before condition and status
// were split. Items without a condition take it from a legacy status
// that held a condition value (status resets to available), or default
// to good. Idempotent: a collection where every item has a condition
// comes back unchanged. Nil container/item lists normalize to empty.
func MigrateRooms(rooms []models.Room) []models.Room {
	for ri := range rooms {
		room := &rooms[ri]
		if room.Containers == nil {
			room.Containers = []models.Container{}
		}
		for ci := range room.Containers {
			container := &room.Containers[ci]
			if container.Items == nil {
				container.Items = []models.Item{}
			}
			for ii := range container.Items {
				item := &container.Items[ii]
				if item.Condition != "" {
					continue
				}
				if metadata.IsCondition(item.Status) {
					item.Condition = item.Status
				} else {
					item.Condition = metadata.ConditionGood.String()
				}
				item.Status = metadata.StatusAvailable.String()
			}
		}
	}
	return rooms
}
