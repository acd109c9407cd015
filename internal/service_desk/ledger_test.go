package service_desk

import (
	"testing"

	"labhouse/internal/storage"
	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/ident"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	gen, err := ident.NewGenerator(1)
	require.NoError(t, err)
	ledger, err := NewLedger(storage.NewMemoryStore(), gen, zap.NewNop())
	require.NoError(t, err)
	return ledger
}

func brokenMonitor() CreateRequestInput {
	return CreateRequestInput{
		ComponentID:   "itm-1",
		ComponentName: "Monitor",
		StationID:     "cont-1",
		StationName:   "Desk 1",
		RoomID:        "lab-comp",
		Description:   "Screen flickers",
		RequesterName: "Alice",
	}
}

func TestAddRequestStartsPending(t *testing.T) {
	ledger := newTestLedger(t)

	req, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "pending", req.Status)
	assert.False(t, req.RequestDate.IsZero())
	assert.Nil(t, req.ResolutionDate)
}

func TestAddRequestValidation(t *testing.T) {
	ledger := newTestLedger(t)

	tests := []struct {
		name   string
		mutate func(*CreateRequestInput)
	}{
		{"missing component_id", func(in *CreateRequestInput) { in.ComponentID = "" }},
		{"missing station_id", func(in *CreateRequestInput) { in.StationID = "" }},
		{"missing description", func(in *CreateRequestInput) { in.Description = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := brokenMonitor()
			tt.mutate(&in)

			_, err := ledger.AddRequest(in)

			var validation *custom_error.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRequestsAreNewestFirst(t *testing.T) {
	ledger := newTestLedger(t)

	first, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)
	in := brokenMonitor()
	in.Description = "Second report"
	second, err := ledger.AddRequest(in)
	require.NoError(t, err)

	requests := ledger.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
}

func TestAcceptThenComplete(t *testing.T) {
	ledger := newTestLedger(t)
	req, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)

	accepted, err := ledger.ChangeStatus(req.ID, "accepted", "", "")
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)
	assert.Nil(t, accepted.ResolutionDate)

	completed, err := ledger.ChangeStatus(req.ID, "completed", "", "Replaced the cable")
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, "Replaced the cable", completed.ResolutionNote)
	require.NotNil(t, completed.ResolutionDate)
}

func TestDenyFromPendingOrAccepted(t *testing.T) {
	ledger := newTestLedger(t)

	pending, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)
	denied, err := ledger.ChangeStatus(pending.ID, "denied", "Not covered by warranty", "")
	require.NoError(t, err)
	assert.Equal(t, "denied", denied.Status)
	assert.Equal(t, "Not covered by warranty", denied.RejectionReason)
	require.NotNil(t, denied.ResolutionDate)

	second, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)
	_, err = ledger.ChangeStatus(second.ID, "accepted", "", "")
	require.NoError(t, err)
	denied, err = ledger.ChangeStatus(second.ID, "denied", "Parts unavailable", "")
	require.NoError(t, err)
	assert.Equal(t, "denied", denied.Status)
}

func TestIllegalTransitions(t *testing.T) {
	ledger := newTestLedger(t)

	tests := []struct {
		name    string
		prepare func(id string)
		target  string
	}{
		{"pending straight to completed", func(string) {}, "completed"},
		{"completed is terminal", func(id string) {
			_, err := ledger.ChangeStatus(id, "accepted", "", "")
			require.NoError(t, err)
			_, err = ledger.ChangeStatus(id, "completed", "", "Done")
			require.NoError(t, err)
		}, "accepted"},
		{"denied is terminal", func(id string) {
			_, err := ledger.ChangeStatus(id, "denied", "No budget", "")
			require.NoError(t, err)
		}, "denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ledger.AddRequest(brokenMonitor())
			require.NoError(t, err)
			tt.prepare(req.ID)

			_, err = ledger.ChangeStatus(req.ID, tt.target, "reason", "note")

			var invalid *custom_error.InvalidStateError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestDenyRequiresReason(t *testing.T) {
	ledger := newTestLedger(t)
	req, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)

	_, err = ledger.ChangeStatus(req.ID, "denied", "", "")

	var validation *custom_error.ValidationError
	require.ErrorAs(t, err, &validation)

	// the request was left untouched
	requests := ledger.Requests()
	assert.Equal(t, "pending", requests[0].Status)
}

func TestCompleteRequiresNote(t *testing.T) {
	ledger := newTestLedger(t)
	req, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)
	_, err = ledger.ChangeStatus(req.ID, "accepted", "", "")
	require.NoError(t, err)

	_, err = ledger.ChangeStatus(req.ID, "completed", "", "")

	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestChangeStatusUnknownRequest(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.ChangeStatus("req-ghost", "accepted", "", "")

	var notFound *custom_error.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "service request", notFound.Resource)
}

func TestChangeStatusUnknownStatusValue(t *testing.T) {
	ledger := newTestLedger(t)
	req, err := ledger.AddRequest(brokenMonitor())
	require.NoError(t, err)

	_, err = ledger.ChangeStatus(req.ID, "escalated", "", "")

	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestRequestsByRoom(t *testing.T) {
	ledger := newTestLedger(t)

	comp := brokenMonitor()
	_, err := ledger.AddRequest(comp)
	require.NoError(t, err)

	phys := brokenMonitor()
	phys.RoomID = "lab-phys"
	_, err = ledger.AddRequest(phys)
	require.NoError(t, err)

	filtered := ledger.RequestsByRoom("lab-comp")
	require.Len(t, filtered, 1)
	assert.Equal(t, "lab-comp", filtered[0].RoomID)

	assert.Empty(t, ledger.RequestsByRoom("lab-bio"))
}

func TestLedgerSurvivesReload(t *testing.T) {
	mem := storage.NewMemoryStore()
	gen, err := ident.NewGenerator(1)
	require.NoError(t, err)

	first, err := NewLedger(mem, gen, zap.NewNop())
	require.NoError(t, err)
	req, err := first.AddRequest(brokenMonitor())
	require.NoError(t, err)

	second, err := NewLedger(mem, gen, zap.NewNop())
	require.NoError(t, err)

	requests := second.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, req.ID, requests[0].ID)
}
