// Package operations holds the cross-cutting multi-item workflows:
// transfers between containers, the verification step that closes a
// pending transfer, and checkout/check-in usage tracking. Every
// operation computes against one deep-copied snapshot of the room set
// and commits it back in a single replace, so a batch never clobbers
// its own in-flight moves and persistence happens once per operation.
package operations

import (
	"fmt"
	"time"

	"labhouse/internal/inventory"
	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/ident"
	"labhouse/pkg/metadata"
	"labhouse/pkg/models"

	"go.uber.org/zap"
)

type Service struct {
	inv   *inventory.Store
	ident *ident.Generator
	log   *zap.Logger
}

func NewService(inv *inventory.Store, ident *ident.Generator, log *zap.Logger) *Service {
	return &Service{inv: inv, ident: ident, log: log}
}

type TransferRequest struct {
	ItemIDs           []string `json:"item_ids"`
	TargetRoomID      string   `json:"target_room_id"`
	TargetContainerID string   `json:"target_container_id"`
	Mover             string   `json:"mover"`
	Receiver          string   `json:"receiver"`
	ConditionBefore   string   `json:"condition_before"`
}

// Transfer moves the selected items into the target container. Each
// item gets a TRANSFER log entry with pending verification and its
// condition stamped to the operator's stated pre-move value; status is
// untouched. Source and target may be the same container (reorder) or
// the same room. All-or-nothing: validation failures abort before any
// mutation.
func (s *Service) Transfer(req TransferRequest) (int, error) {
	if len(req.ItemIDs) == 0 {
		return 0, custom_error.NewValidation("no items selected for transfer")
	}
	condition, err := metadata.NewCondition(req.ConditionBefore)
	if err != nil {
		return 0, custom_error.NewValidation("%s", err.Error())
	}

	rooms := s.inv.Snapshot()

	targetRoomIdx, targetContainerIdx := findContainer(rooms, req.TargetRoomID, req.TargetContainerID)
	if targetRoomIdx < 0 {
		return 0, &custom_error.InvalidDestinationError{
			Message: fmt.Sprintf("transfer target does not resolve: room %s, container %s", req.TargetRoomID, req.TargetContainerID),
		}
	}

	for _, id := range req.ItemIDs {
		if ri, _, _ := findItem(rooms, id); ri < 0 {
			return 0, &custom_error.NotFoundError{Resource: "item", ID: id}
		}
	}

	now := time.Now()
	for _, id := range req.ItemIDs {
		// Re-resolve against the mutated snapshot: an earlier item in
		// the batch may have already moved through this container.
		sourceRoomIdx, sourceContainerIdx, itemIdx := findItem(rooms, id)
		source := &rooms[sourceRoomIdx].Containers[sourceContainerIdx]
		target := &rooms[targetRoomIdx].Containers[targetContainerIdx]

		item := source.Items[itemIdx].Clone()
		entry := models.ItemLog{
			ID:     s.ident.LogID(),
			Date:   now,
			Action: models.ActionTransfer,
			Transfer: &models.TransferDetails{
				From:               rooms[sourceRoomIdx].Name + " - " + source.Name,
				To:                 rooms[targetRoomIdx].Name + " - " + target.Name,
				Mover:              req.Mover,
				Receiver:           req.Receiver,
				Condition:          condition.String(),
				VerificationStatus: models.VerificationPending,
			},
		}
		item.Logs = append([]models.ItemLog{entry}, item.Logs...)
		item.Condition = condition.String()

		// Remove then add, in that order, so a same-container transfer
		// degrades to a reorder instead of duplicating the item.
		source.Items = append(source.Items[:itemIdx], source.Items[itemIdx+1:]...)
		target.Items = append(target.Items, item)
	}

	if err := s.inv.Replace(rooms); err != nil {
		return len(req.ItemIDs), err
	}
	return len(req.ItemIDs), nil
}

// Verify closes out a pending transfer: the destination confirms the
// item arrived and records its observed condition. The owning item is
// searched across the whole room tree, since it now lives at the
// target. Verifying an already-verified log is rejected rather than
// overwritten, so condition history is never silently rewritten.
func (s *Service) Verify(logID string, conditionAfter string) (models.Item, error) {
	condition, err := metadata.NewCondition(conditionAfter)
	if err != nil {
		return models.Item{}, custom_error.NewValidation("%s", err.Error())
	}

	rooms := s.inv.Snapshot()

	for ri := range rooms {
		for ci := range rooms[ri].Containers {
			items := rooms[ri].Containers[ci].Items
			for ii := range items {
				item := &items[ii]
				for li := range item.Logs {
					entry := &item.Logs[li]
					if entry.ID != logID || entry.Transfer == nil {
						continue
					}
					if entry.Transfer.VerificationStatus == models.VerificationVerified {
						return models.Item{}, &custom_error.InvalidStateError{
							Message: fmt.Sprintf("transfer %s already verified", logID),
						}
					}

					now := time.Now()
					entry.Transfer.VerificationStatus = models.VerificationVerified
					entry.Transfer.VerifiedAt = &now
					entry.Transfer.ConditionAfter = condition.String()
					item.Condition = condition.String()

					verified := item.Clone()
					if err := s.inv.Replace(rooms); err != nil {
						return verified, err
					}
					return verified, nil
				}
			}
		}
	}

	return models.Item{}, &custom_error.NotFoundError{Resource: "transfer log", ID: logID}
}

type UsageRequest struct {
	ItemIDs   []string `json:"item_ids"`
	Borrower  string   `json:"borrower"`
	Purpose   string   `json:"purpose"`
	Condition string   `json:"condition"`
}

// CheckOut lends the selected items out. Every item must be available;
// otherwise the whole batch fails listing the offenders. Condition is
// recorded in the log but not changed.
func (s *Service) CheckOut(req UsageRequest) error {
	return s.recordUsage(req, models.ActionCheckOut,
		metadata.StatusAvailable, metadata.StatusInUse, false)
}

// CheckIn returns items from use. Every item must be in use; the
// observed return condition overwrites the item's condition.
func (s *Service) CheckIn(req UsageRequest) error {
	return s.recordUsage(req, models.ActionReturned,
		metadata.StatusInUse, metadata.StatusAvailable, true)
}

func (s *Service) recordUsage(req UsageRequest, action string, requiredStatus, newStatus metadata.Status, updateCondition bool) error {
	if len(req.ItemIDs) == 0 {
		return custom_error.NewValidation("no items selected")
	}
	condition, err := metadata.NewCondition(req.Condition)
	if err != nil {
		return custom_error.NewValidation("%s", err.Error())
	}

	rooms := s.inv.Snapshot()

	type located struct {
		room, container, item int
	}
	found := make([]located, 0, len(req.ItemIDs))
	var offenders []string

	for _, id := range req.ItemIDs {
		ri, ci, ii := findItem(rooms, id)
		if ri < 0 {
			return &custom_error.NotFoundError{Resource: "item", ID: id}
		}
		item := rooms[ri].Containers[ci].Items[ii]
		if item.Status != requiredStatus.String() {
			offenders = append(offenders, item.Name)
		}
		found = append(found, located{ri, ci, ii})
	}
	if len(offenders) > 0 {
		return &custom_error.InvalidStateError{
			Message: fmt.Sprintf("items are not %s", requiredStatus),
			Items:   offenders,
		}
	}

	now := time.Now()
	for _, loc := range found {
		item := &rooms[loc.room].Containers[loc.container].Items[loc.item]
		entry := models.ItemLog{
			ID:     s.ident.LogID(),
			Date:   now,
			Action: action,
			Usage: &models.UsageDetails{
				Borrower:  req.Borrower,
				Purpose:   req.Purpose,
				Condition: condition.String(),
			},
		}
		item.Logs = append([]models.ItemLog{entry}, item.Logs...)
		item.Status = newStatus.String()
		if updateCondition {
			item.Condition = condition.String()
		}
	}

	return s.inv.Replace(rooms)
}

func findItem(rooms []models.Room, itemID string) (int, int, int) {
	for ri := range rooms {
		for ci := range rooms[ri].Containers {
			for ii := range rooms[ri].Containers[ci].Items {
				if rooms[ri].Containers[ci].Items[ii].ID == itemID {
					return ri, ci, ii
				}
			}
		}
	}
	return -1, -1, -1
}

func findContainer(rooms []models.Room, roomID, containerID string) (int, int) {
	for ri := range rooms {
		if rooms[ri].ID != roomID {
			continue
		}
		for ci := range rooms[ri].Containers {
			if rooms[ri].Containers[ci].ID == containerID {
				return ri, ci
			}
		}
	}
	return -1, -1
}
