package models

import "time"

const (
	ActionReported = "Reported"
	ActionTransfer = "TRANSFER"
	ActionCheckOut = "CHECK_OUT"
	ActionReturned = "RETURNED"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// ItemLog is one entry of an item's newest-first history. Entries are
// immutable once appended, with a single exception: a TRANSFER entry's
// verification fields flip from pending to verified exactly once.
//
// Details are a tagged union keyed by Action: TRANSFER carries
// Transfer, CHECK_OUT/RETURNED carry Usage, anything else uses Note.
type ItemLog struct {
	ID       string           `json:"id"`
	Date     time.Time        `json:"date"`
	Action   string           `json:"action"`
	Transfer *TransferDetails `json:"transfer,omitempty"`
	Usage    *UsageDetails    `json:"usage,omitempty"`
	Note     string           `json:"note,omitempty"`
}

// TransferDetails records a move between containers. Condition is the
// operator's assertion of state before the move; ConditionAfter is set
// by the destination's verification step.
type TransferDetails struct {
	From               string     `json:"from"`
	To                 string     `json:"to"`
	Mover              string     `json:"mover"`
	Receiver           string     `json:"receiver"`
	Condition          string     `json:"condition"`
	VerificationStatus string     `json:"verificationStatus"`
	VerifiedAt         *time.Time `json:"verifiedAt,omitempty"`
	ConditionAfter     string     `json:"conditionAfter,omitempty"`
}

// UsageDetails records a checkout or return.
type UsageDetails struct {
	Borrower  string `json:"borrower"`
	Purpose   string `json:"purpose"`
	Condition string `json:"condition"`
}

func (l ItemLog) Clone() ItemLog {
	out := l
	if l.Transfer != nil {
		t := *l.Transfer
		if l.Transfer.VerifiedAt != nil {
			at := *l.Transfer.VerifiedAt
			t.VerifiedAt = &at
		}
		out.Transfer = &t
	}
	if l.Usage != nil {
		u := *l.Usage
		out.Usage = &u
	}
	return out
}
