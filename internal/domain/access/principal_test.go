package access

import (
	"errors"
	"testing"
)

func TestPrincipalFromClaims(t *testing.T) {
	t.Run("super admin", func(t *testing.T) {
		p, err := PrincipalFromClaims(map[string]interface{}{
			"user_id":     "u1",
			"email":       "root@example.com",
			"super_admin": true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Kind != PrincipalSuperAdmin || !p.IsSuperAdmin() {
			t.Errorf("expected super admin principal, got %+v", p)
		}
	})

	t.Run("org user", func(t *testing.T) {
		p, err := PrincipalFromClaims(map[string]interface{}{
			"user_id":     "u2",
			"email":       "user@example.com",
			"super_admin": false,
			"org_id":      "o1",
			"role_id":     "r1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Kind != PrincipalOrgUser || p.OrganizationID != "o1" || p.RoleID != "r1" {
			t.Errorf("unexpected principal: %+v", p)
		}
	})

	t.Run("org user missing org claim", func(t *testing.T) {
		_, err := PrincipalFromClaims(map[string]interface{}{
			"user_id": "u2",
			"email":   "user@example.com",
			"role_id": "r1",
		})
		if !errors.Is(err, ErrInvalidPrincipalClaims) {
			t.Errorf("expected ErrInvalidPrincipalClaims, got %v", err)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := PrincipalFromClaims(map[string]interface{}{
			"email": "user@example.com",
		})
		if !errors.Is(err, ErrInvalidPrincipalClaims) {
			t.Errorf("expected ErrInvalidPrincipalClaims, got %v", err)
		}
	})

	// The variant comes from the claim, never from the email address.
	t.Run("admin looking email is still an org user", func(t *testing.T) {
		p, err := PrincipalFromClaims(map[string]interface{}{
			"user_id":     "u3",
			"email":       "superadmin@example.com",
			"super_admin": false,
			"org_id":      "o1",
			"role_id":     "r1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.IsSuperAdmin() {
			t.Error("email must not influence the principal kind")
		}
	})
}

func TestPermissionSet(t *testing.T) {
	set := NewPermissionSet([]Permission{
		{Tag: TagLeaveRequestManagement, Action: ActionCreate},
		{Tag: TagLeaveRequestManagement, Action: ActionRead},
		{Tag: TagRoleManagement, Action: ActionUpdate},
	})

	if !set.Has(TagLeaveRequestManagement, ActionCreate) {
		t.Error("expected create grant")
	}
	if set.Has(TagLeaveRequestManagement, ActionApprove) {
		t.Error("unexpected approve grant")
	}
	if set.Has(TagLeaveTypeManagement, ActionRead) {
		t.Error("unexpected grant for absent tag")
	}
}
