package models

import "time"

// ServiceRequest tracks a reported issue on an item through resolution.
// It references rooms/containers/items by id only; a dangling reference
// after a room deletion is tolerated, the ledger is independent.
type ServiceRequest struct {
	ID                string     `json:"id"`
	ComponentID       string     `json:"componentId"`
	ComponentName     string     `json:"componentName"`
	StationID         string     `json:"stationId"`
	StationName       string     `json:"stationName"`
	RoomID            string     `json:"roomId"`
	Description       string     `json:"description"`
	RequesterName     string     `json:"requesterName,omitempty"`
	ComponentSKU      string     `json:"componentSku,omitempty"`
	ComponentCategory string     `json:"componentCategory,omitempty"`
	Status            string     `json:"status"`
	RequestDate       time.Time  `json:"requestDate"`
	ResolutionDate    *time.Time `json:"resolutionDate,omitempty"`
	RejectionReason   string     `json:"rejectionReason,omitempty"`
	ResolutionNote    string     `json:"resolutionNote,omitempty"`
}

func (r ServiceRequest) Clone() ServiceRequest {
	out := r
	if r.ResolutionDate != nil {
		at := *r.ResolutionDate
		out.ResolutionDate = &at
	}
	return out
}
