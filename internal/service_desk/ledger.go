package service_desk

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"labhouse/internal/storage"
	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/ident"
	"labhouse/pkg/metadata"
	"labhouse/pkg/models"

	"go.uber.org/zap"
)

// legal transitions per current status. Terminal states map to nothing.
var transitions = map[metadata.RequestStatus][]metadata.RequestStatus{
	metadata.RequestPending:  {metadata.RequestAccepted, metadata.RequestDenied},
	metadata.RequestAccepted: {metadata.RequestCompleted, metadata.RequestDenied},
}

// Ledger owns the service request collection, newest first. Requests
// reference rooms and items by id only, so they survive deletion of
// what they point at.
type Ledger struct {
	mu       sync.Mutex
	requests []models.ServiceRequest
	storage  storage.Store
	ident    *ident.Generator
	log      *zap.Logger
}

func NewLedger(st storage.Store, ident *ident.Generator, log *zap.Logger) (*Ledger, error) {
	l := &Ledger{
		requests: []models.ServiceRequest{},
		storage:  st,
		ident:    ident,
		log:      log,
	}

	raw, found, err := st.Load(storage.KeyRequests)
	if err != nil {
		return nil, fmt.Errorf("load service requests: %w", err)
	}
	if found {
		if err := json.Unmarshal(raw, &l.requests); err != nil {
			return nil, fmt.Errorf("decode service requests: %w", err)
		}
	}

	return l, nil
}

type CreateRequestInput struct {
	ComponentID       string `json:"component_id"`
	ComponentName     string `json:"component_name"`
	StationID         string `json:"station_id"`
	StationName       string `json:"station_name"`
	RoomID            string `json:"room_id"`
	Description       string `json:"description"`
	RequesterName     string `json:"requester_name"`
	ComponentSKU      string `json:"component_sku"`
	ComponentCategory string `json:"component_category"`
}

func (in CreateRequestInput) Validate() error {
	if in.ComponentID == "" {
		return custom_error.NewValidation("component_id is required")
	}
	if in.StationID == "" {
		return custom_error.NewValidation("station_id is required")
	}
	if in.Description == "" {
		return custom_error.NewValidation("description is required")
	}
	return nil
}

func (l *Ledger) Requests() []models.ServiceRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.ServiceRequest, len(l.requests))
	for i, r := range l.requests {
		out[i] = r.Clone()
	}
	return out
}

// AddRequest creates a request; it always starts pending with the
// request date stamped now, and is inserted newest first.
func (l *Ledger) AddRequest(in CreateRequestInput) (models.ServiceRequest, error) {
	if err := in.Validate(); err != nil {
		return models.ServiceRequest{}, err
	}

	req := models.ServiceRequest{
		ID:                l.ident.RequestID(),
		ComponentID:       in.ComponentID,
		ComponentName:     in.ComponentName,
		StationID:         in.StationID,
		StationName:       in.StationName,
		RoomID:            in.RoomID,
		Description:       in.Description,
		RequesterName:     in.RequesterName,
		ComponentSKU:      in.ComponentSKU,
		ComponentCategory: in.ComponentCategory,
		Status:            metadata.RequestPending.String(),
		RequestDate:       time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append([]models.ServiceRequest{req}, l.requests...)

	return req, l.persistLocked()
}

// ChangeStatus applies one legal state machine move. Denying requires
// a rejection reason, completing requires a resolution note; entering
// either terminal state stamps the resolution date, entering accepted
// clears the resolution fields.
func (l *Ledger) ChangeStatus(id string, status string, reason string, note string) (models.ServiceRequest, error) {
	newStatus, err := metadata.NewRequestStatus(status)
	if err != nil {
		return models.ServiceRequest{}, custom_error.NewValidation("%s", err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, r := range l.requests {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.ServiceRequest{}, &custom_error.NotFoundError{Resource: "service request", ID: id}
	}

	req := &l.requests[idx]
	current := metadata.RequestStatus(req.Status)
	if !legalTransition(current, newStatus) {
		return models.ServiceRequest{}, &custom_error.InvalidStateError{
			Message: fmt.Sprintf("cannot move request from %s to %s", current, newStatus),
		}
	}

	switch newStatus {
	case metadata.RequestDenied:
		if reason == "" {
			return models.ServiceRequest{}, custom_error.NewValidation("rejection reason is required to deny a request")
		}
		now := time.Now()
		req.RejectionReason = reason
		req.ResolutionNote = ""
		req.ResolutionDate = &now
	case metadata.RequestCompleted:
		if note == "" {
			return models.ServiceRequest{}, custom_error.NewValidation("resolution note is required to complete a request")
		}
		now := time.Now()
		req.ResolutionNote = note
		req.RejectionReason = ""
		req.ResolutionDate = &now
	default:
		req.ResolutionDate = nil
		req.RejectionReason = ""
		req.ResolutionNote = ""
	}
	req.Status = newStatus.String()

	return req.Clone(), l.persistLocked()
}

// RequestsByRoom is a pure filter over the ledger.
func (l *Ledger) RequestsByRoom(roomID string) []models.ServiceRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.ServiceRequest
	for _, r := range l.requests {
		if r.RoomID == roomID {
			out = append(out, r.Clone())
		}
	}
	return out
}

func legalTransition(from, to metadata.RequestStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (l *Ledger) persistLocked() error {
	raw, err := json.Marshal(l.requests)
	if err != nil {
		return fmt.Errorf("encode service requests: %w", err)
	}

	if err := l.storage.Save(storage.KeyRequests, raw); err != nil {
		l.log.Error("service requests not persisted, in-memory state kept",
			zap.Error(err))
		return &custom_error.StorageError{Key: storage.KeyRequests, Err: err}
	}
	return nil
}
