package fixtures

import (
	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

type catalogueEntry struct {
	Tag         access.Tag
	Action      access.Action
	Name        string
	Description string
}

var catalogue = []catalogueEntry{
	{access.TagLeaveRequestManagement, access.ActionCreate, "Submit leave requests", "Create leave requests on own behalf"},
	{access.TagLeaveRequestManagement, access.ActionRead, "View leave requests", "View leave requests within the organization"},
	{access.TagLeaveRequestManagement, access.ActionUpdate, "Edit leave requests", "Edit own pending leave requests"},
	{access.TagLeaveRequestManagement, access.ActionDelete, "Cancel leave requests", "Cancel own pending leave requests"},
	{access.TagLeaveRequestManagement, access.ActionApprove, "Decide leave requests", "Approve, reject or recommend assigned leave requests"},

	{access.TagLeaveTypeManagement, access.ActionCreate, "Create leave types", "Add leave types to the organization"},
	{access.TagLeaveTypeManagement, access.ActionRead, "View leave types", "View the organization's leave types"},
	{access.TagLeaveTypeManagement, access.ActionUpdate, "Edit leave types", "Edit the organization's leave types"},
	{access.TagLeaveTypeManagement, access.ActionDelete, "Delete leave types", "Remove leave types from the organization"},

	{access.TagUserManagement, access.ActionCreate, "Create users", "Add users to the organization"},
	{access.TagUserManagement, access.ActionRead, "View users", "View the organization's users"},
	{access.TagUserManagement, access.ActionUpdate, "Edit users", "Edit the organization's users"},
	{access.TagUserManagement, access.ActionDelete, "Delete users", "Remove users from the organization"},

	{access.TagRoleManagement, access.ActionCreate, "Create roles", "Add roles to the organization"},
	{access.TagRoleManagement, access.ActionRead, "View roles", "View roles and their permission sets"},
	{access.TagRoleManagement, access.ActionUpdate, "Edit roles", "Edit roles and replace their permission sets"},
	{access.TagRoleManagement, access.ActionDelete, "Delete roles", "Remove roles from the organization"},

	{access.TagOrganizationManagement, access.ActionRead, "View organization", "View the organization's profile"},
	{access.TagOrganizationManagement, access.ActionUpdate, "Edit organization", "Edit the organization's profile"},
}

// PermissionCatalogue returns the full (tag, action) catalogue. It is global,
// not per organization; roles pick from it.
func PermissionCatalogue() []access.Permission {
	permissions := make([]access.Permission, 0, len(catalogue))
	for _, entry := range catalogue {
		permissions = append(permissions, access.Permission{
			Tag:         entry.Tag,
			Action:      entry.Action,
			Name:        entry.Name,
			Description: strPtr(entry.Description),
		})
	}
	return permissions
}

// DefaultRolePermissions maps each seeded role name to the (tag, action)
// pairs it starts with.
type RoleSeed struct {
	Name        string
	Description string
	Grants      [][2]string // tag, action
}

// DefaultRoles returns the roles seeded into every new organization.
func DefaultRoles() []RoleSeed {
	return []RoleSeed{
		{
			Name:        "Admin",
			Description: "Full control over the organization",
			Grants:      allGrants(),
		},
		{
			Name:        "Manager",
			Description: "Decides leave requests and views team data",
			Grants: [][2]string{
				{string(access.TagLeaveRequestManagement), string(access.ActionCreate)},
				{string(access.TagLeaveRequestManagement), string(access.ActionRead)},
				{string(access.TagLeaveRequestManagement), string(access.ActionUpdate)},
				{string(access.TagLeaveRequestManagement), string(access.ActionDelete)},
				{string(access.TagLeaveRequestManagement), string(access.ActionApprove)},
				{string(access.TagLeaveTypeManagement), string(access.ActionRead)},
				{string(access.TagUserManagement), string(access.ActionRead)},
			},
		},
		{
			Name:        "Employee",
			Description: "Submits and manages own leave requests",
			Grants: [][2]string{
				{string(access.TagLeaveRequestManagement), string(access.ActionCreate)},
				{string(access.TagLeaveRequestManagement), string(access.ActionRead)},
				{string(access.TagLeaveRequestManagement), string(access.ActionUpdate)},
				{string(access.TagLeaveRequestManagement), string(access.ActionDelete)},
				{string(access.TagLeaveTypeManagement), string(access.ActionRead)},
			},
		},
	}
}

func allGrants() [][2]string {
	grants := make([][2]string, 0, len(catalogue))
	for _, entry := range catalogue {
		grants = append(grants, [2]string{string(entry.Tag), string(entry.Action)})
	}
	return grants
}

// DefaultLeaveTypes returns standard leave types for a new organization.
func DefaultLeaveTypes(organizationID string) []leave.LeaveType {
	return []leave.LeaveType{
		{
			OrganizationID: organizationID,
			Name:           "Annual Leave",
			Code:           strPtr("ANNUAL"),
			Description:    strPtr("Paid yearly leave"),
			IsActive:       boolPtr(true),
		},
		{
			OrganizationID: organizationID,
			Name:           "Sick Leave",
			Code:           strPtr("SICK"),
			Description:    strPtr("Medical leave"),
			IsActive:       boolPtr(true),
		},
		{
			OrganizationID: organizationID,
			Name:           "Unpaid Leave",
			Code:           strPtr("UNPAID"),
			Description:    strPtr("Leave without pay"),
			IsActive:       boolPtr(true),
		},
	}
}
