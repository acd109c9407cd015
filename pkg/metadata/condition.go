package metadata

import "fmt"

// Condition is the physical state of an item.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionService Condition = "service"
	ConditionDamaged Condition = "damaged"
	ConditionBroken  Condition = "broken"
)

func NewCondition(value string) (Condition, error) {
	condition := Condition(value)
	if !condition.isValid() {
		return "", fmt.Errorf("invalid condition: %s", value)
	}
	return condition, nil
}

func (c Condition) isValid() bool {
	switch c {
	case ConditionGood, ConditionService, ConditionDamaged, ConditionBroken:
		return true
	default:
		return false
	}
}

func (c Condition) String() string {
	return string(c)
}

// IsCondition reports whether a raw string is a condition value. Used
// by the load-time migration and the stats fallback, where a legacy
// status field may hold condition values.
func IsCondition(value string) bool {
	return Condition(value).isValid()
}
