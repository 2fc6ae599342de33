package access

import "time"

// Action is the verb half of a permission.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
)

// Tag groups permissions by feature area.
type Tag string

const (
	TagLeaveRequestManagement Tag = "leave_request_management"
	TagLeaveTypeManagement    Tag = "leave_type_management"
	TagUserManagement         Tag = "user_management"
	TagRoleManagement         Tag = "role_management"
	TagOrganizationManagement Tag = "organization_management"
)

// Permission is one (tag, action) entry of the catalogue.
type Permission struct {
	ID          string
	Tag         Tag
	Action      Action
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role owns a set of permissions within one organization.
type Role struct {
	ID             string
	OrganizationID string
	Name           string
	Description    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join (for responses)
	Permissions []Permission
}

// PermissionSet is a resolved permission set keyed by (tag, action).
type PermissionSet map[Tag]map[Action]struct{}

func NewPermissionSet(permissions []Permission) PermissionSet {
	set := make(PermissionSet)
	for _, p := range permissions {
		actions, ok := set[p.Tag]
		if !ok {
			actions = make(map[Action]struct{})
			set[p.Tag] = actions
		}
		actions[p.Action] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the (tag, action) pair.
func (s PermissionSet) Has(tag Tag, action Action) bool {
	actions, ok := s[tag]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}
