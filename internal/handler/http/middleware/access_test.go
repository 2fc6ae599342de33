package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
)

// guardFunc stubs the gate; only Guard/GuardAny are exercised here.
type guardFunc func(principal access.Principal, tag access.Tag, actions []access.Action) access.GateDecision

func (f guardFunc) Guard(_ context.Context, p access.Principal, tag access.Tag, action access.Action) (access.GateDecision, error) {
	return f(p, tag, []access.Action{action}), nil
}

func (f guardFunc) GuardAny(_ context.Context, p access.Principal, tag access.Tag, actions []access.Action) (access.GateDecision, error) {
	return f(p, tag, actions), nil
}

func (f guardFunc) EffectivePermissions(context.Context, access.Principal) (access.PermissionSet, error) {
	return nil, nil
}
func (f guardFunc) HasPermission(context.Context, access.Principal, access.Tag, access.Action) (bool, error) {
	return false, nil
}
func (f guardFunc) CreateRole(context.Context, access.Principal, access.CreateRoleRequest) (access.Role, error) {
	return access.Role{}, nil
}
func (f guardFunc) GetRole(context.Context, access.Principal, string) (access.Role, error) {
	return access.Role{}, nil
}
func (f guardFunc) ListRoles(context.Context, access.Principal) ([]access.Role, error) {
	return nil, nil
}
func (f guardFunc) UpdateRole(context.Context, access.Principal, access.UpdateRoleRequest) error {
	return nil
}
func (f guardFunc) DeleteRole(context.Context, access.Principal, string) error { return nil }
func (f guardFunc) GetRolePermissions(context.Context, access.Principal, string) ([]access.Permission, error) {
	return nil, nil
}
func (f guardFunc) ReplaceRolePermissions(context.Context, access.Principal, access.ReplaceRolePermissionsRequest) error {
	return nil
}
func (f guardFunc) ListPermissions(context.Context, access.ListPermissionsFilter) (access.ListPermissionsResponse, error) {
	return access.ListPermissionsResponse{}, nil
}

func requestWithPrincipal(p access.Principal) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	return r.WithContext(access.ContextWithPrincipal(r.Context(), p))
}

func TestRequirePermission(t *testing.T) {
	allow := guardFunc(func(access.Principal, access.Tag, []access.Action) access.GateDecision {
		return access.Allow()
	})
	deny := guardFunc(func(access.Principal, access.Tag, []access.Action) access.GateDecision {
		return access.Deny("missing permission")
	})

	handlerRan := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })
	principal := access.OrgUserPrincipal("u1", "u1@example.com", "o1", "r1")

	t.Run("allowed", func(t *testing.T) {
		handlerRan = false
		rec := httptest.NewRecorder()
		RequirePermission(allow, access.TagLeaveRequestManagement, access.ActionRead)(next).
			ServeHTTP(rec, requestWithPrincipal(principal))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, handlerRan)
	})

	t.Run("denied writes 403 and stops", func(t *testing.T) {
		handlerRan = false
		rec := httptest.NewRecorder()
		RequirePermission(deny, access.TagLeaveRequestManagement, access.ActionRead)(next).
			ServeHTTP(rec, requestWithPrincipal(principal))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, handlerRan)
		assert.Contains(t, rec.Body.String(), "missing permission")
	})

	t.Run("no principal is a 401", func(t *testing.T) {
		handlerRan = false
		rec := httptest.NewRecorder()
		RequirePermission(allow, access.TagLeaveRequestManagement, access.ActionRead)(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerRan)
	})
}

func TestOrganizationScope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	orgUser := access.OrgUserPrincipal("u1", "u1@example.com", "org-a", "r1")
	root := access.SuperAdminPrincipal("u0", "root@example.com")

	t.Run("matching header passes", func(t *testing.T) {
		r := requestWithPrincipal(orgUser)
		r.Header.Set("X-Organization-ID", "org-a")
		rec := httptest.NewRecorder()
		OrganizationScope(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mismatched header rejected", func(t *testing.T) {
		r := requestWithPrincipal(orgUser)
		r.Header.Set("X-Organization-ID", "org-b")
		rec := httptest.NewRecorder()
		OrganizationScope(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("absent header passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		OrganizationScope(next).ServeHTTP(rec, requestWithPrincipal(orgUser))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("super admin exempt", func(t *testing.T) {
		r := requestWithPrincipal(root)
		r.Header.Set("X-Organization-ID", "org-b")
		rec := httptest.NewRecorder()
		OrganizationScope(next).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSuperAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	SuperAdminOnly(next).ServeHTTP(rec, requestWithPrincipal(access.SuperAdminPrincipal("u0", "root@example.com")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	SuperAdminOnly(next).ServeHTTP(rec, requestWithPrincipal(access.OrgUserPrincipal("u1", "u1@example.com", "o1", "r1")))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
