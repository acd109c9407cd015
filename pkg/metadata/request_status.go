package metadata

import "fmt"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDenied    RequestStatus = "denied"
	RequestCompleted RequestStatus = "completed"
)

func NewRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid request status: %s", value)
	}
	return status, nil
}

func (s RequestStatus) isValid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDenied, RequestCompleted:
		return true
	default:
		return false
	}
}

func (s RequestStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestDenied || s == RequestCompleted
}
