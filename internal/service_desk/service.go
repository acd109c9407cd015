package service_desk

import (
	"errors"
	"time"

	"labhouse/internal/inventory"
	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/ident"
	"labhouse/pkg/metadata"
	"labhouse/pkg/models"

	"go.uber.org/zap"
)

// Service composes the ledger with the inventory store for flows that
// touch both.
type Service struct {
	ledger *Ledger
	inv    *inventory.Store
	ident  *ident.Generator
	log    *zap.Logger
}

func NewService(ledger *Ledger, inv *inventory.Store, ident *ident.Generator, log *zap.Logger) *Service {
	return &Service{ledger: ledger, inv: inv, ident: ident, log: log}
}

// ReportIssue files a pending request for an item and marks the item
// itself: condition drops to service and a Reported entry is prepended
// to its history, in the same logical transaction. The item mutation
// runs first so a missing item aborts before any request exists; the
// ledger append cannot fail in memory, so both apply or neither does.
func (s *Service) ReportIssue(in CreateRequestInput) (models.ServiceRequest, error) {
	if err := in.Validate(); err != nil {
		return models.ServiceRequest{}, err
	}

	rooms := s.inv.Snapshot()

	var marked bool
search:
	for ri := range rooms {
		for ci := range rooms[ri].Containers {
			items := rooms[ri].Containers[ci].Items
			for ii := range items {
				if items[ii].ID != in.ComponentID {
					continue
				}
				item := &items[ii]
				item.Condition = metadata.ConditionService.String()
				entry := models.ItemLog{
					ID:     s.ident.LogID(),
					Date:   time.Now(),
					Action: models.ActionReported,
					Note:   "Issue reported: " + in.Description,
				}
				item.Logs = append([]models.ItemLog{entry}, item.Logs...)
				marked = true
				break search
			}
		}
	}
	if !marked {
		return models.ServiceRequest{}, &custom_error.NotFoundError{Resource: "item", ID: in.ComponentID}
	}

	replaceErr := s.inv.Replace(rooms)
	if replaceErr != nil && !isStorage(replaceErr) {
		return models.ServiceRequest{}, replaceErr
	}

	req, addErr := s.ledger.AddRequest(in)
	if addErr != nil && !isStorage(addErr) {
		return models.ServiceRequest{}, addErr
	}

	// Both mutations applied; surface the first persistence failure.
	if replaceErr != nil {
		return req, replaceErr
	}
	return req, addErr
}

func isStorage(err error) bool {
	var storageErr *custom_error.StorageError
	return errors.As(err, &storageErr)
}
