// Package stats derives read-only views from the room collection. It
// is recomputed from canonical state on every call and never caches,
// which keeps it impossible to go stale.
package stats

import (
	"math"
	"sort"

	"labhouse/pkg/metadata"
	"labhouse/pkg/models"
)

type Summary struct {
	TotalRooms  int         `json:"totalRooms"`
	TotalAssets int         `json:"totalAssets"`
	Health      HealthTally `json:"health"`
	Grading     int         `json:"grading"`
}

type HealthTally struct {
	Good    int `json:"good"`
	Service int `json:"service"`
	Damaged int `json:"damaged"`
	Broken  int `json:"broken"`
}

// Activity is one history entry tagged with where it happened.
type Activity struct {
	RoomName string         `json:"roomName"`
	ItemName string         `json:"itemName"`
	Log      models.ItemLog `json:"log"`
}

// Compute walks the full room tree and returns the summary plus every
// log entry as a date-descending activity feed. Truncation is the
// caller's business. An empty inventory grades 100: nothing is broken,
// so health is perfect by convention.
func Compute(rooms []models.Room) (Summary, []Activity) {
	summary := Summary{
		TotalRooms: len(rooms),
		Grading:    100,
	}
	var feed []Activity

	for _, room := range rooms {
		for _, container := range room.Containers {
			for _, item := range container.Items {
				summary.TotalAssets++

				condition := item.Condition
				if condition == "" && metadata.IsCondition(item.Status) {
					// Pre-migration snapshot slipped through; the
					// legacy status still holds the condition.
					condition = item.Status
				}
				switch metadata.Condition(condition) {
				case metadata.ConditionGood:
					summary.Health.Good++
				case metadata.ConditionService:
					summary.Health.Service++
				case metadata.ConditionDamaged:
					summary.Health.Damaged++
				case metadata.ConditionBroken:
					summary.Health.Broken++
				}

				for _, entry := range item.Logs {
					feed = append(feed, Activity{
						RoomName: room.Name,
						ItemName: item.Name,
						Log:      entry,
					})
				}
			}
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Log.Date.After(feed[j].Log.Date)
	})

	if summary.TotalAssets > 0 {
		summary.Grading = int(math.Round(float64(summary.Health.Good) / float64(summary.TotalAssets) * 100))
	}

	return summary, feed
}
