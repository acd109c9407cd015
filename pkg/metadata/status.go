package metadata

import "fmt"

// Status is the availability of an item, independent of its condition.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
	StatusMissing     Status = "missing"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusMissing:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
