package roles

// Role is the permission level attached to a token. The engine only
// tags operations with roles; enforcement policy lives at the route
// layer.
type Role string

const (
	Staff   Role = "staff"
	LabHead Role = "lab_head"
	Admin   Role = "admin"
)

type HierarchyLevel int

const (
	StaffLevel   HierarchyLevel = 1
	LabHeadLevel HierarchyLevel = 2
	AdminLevel   HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Staff:
		return StaffLevel
	case LabHead:
		return LabHeadLevel
	case Admin:
		return AdminLevel
	default:
		return StaffLevel
	}
}

// HasPermission reports whether the role covers the required one.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Staff, LabHead, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
