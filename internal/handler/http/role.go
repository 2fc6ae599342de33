package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type RoleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	GetPermissions(w http.ResponseWriter, r *http.Request)
	ReplacePermissions(w http.ResponseWriter, r *http.Request)

	ListCatalogue(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	accessService access.AccessService
}

func NewRoleHandler(accessService access.AccessService) RoleHandler {
	return &RoleHandlerImpl{accessService: accessService}
}

// List implements RoleHandler.
func (h *RoleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	roles, err := h.accessService.ListRoles(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

// Create implements RoleHandler.
func (h *RoleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req access.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	role, err := h.accessService.CreateRole(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created", role)
}

// Get implements RoleHandler.
func (h *RoleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	roleID := chi.URLParam(r, "id")
	if roleID == "" {
		response.BadRequest(w, "Role ID is required", nil)
		return
	}

	role, err := h.accessService.GetRole(r.Context(), principal, roleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, role)
}

// Update implements RoleHandler.
func (h *RoleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req access.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.accessService.UpdateRole(r.Context(), principal, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated", nil)
}

// Delete implements RoleHandler.
func (h *RoleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	roleID := chi.URLParam(r, "id")
	if roleID == "" {
		response.BadRequest(w, "Role ID is required", nil)
		return
	}

	if err := h.accessService.DeleteRole(r.Context(), principal, roleID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted", nil)
}

// GetPermissions implements RoleHandler.
func (h *RoleHandlerImpl) GetPermissions(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	roleID := chi.URLParam(r, "id")
	if roleID == "" {
		response.BadRequest(w, "Role ID is required", nil)
		return
	}

	permissions, err := h.accessService.GetRolePermissions(r.Context(), principal, roleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, permissions)
}

// ReplacePermissions implements RoleHandler.
func (h *RoleHandlerImpl) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req access.ReplaceRolePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReplaceRolePermissions decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RoleID = chi.URLParam(r, "id")

	if err := h.accessService.ReplaceRolePermissions(r.Context(), principal, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role permissions replaced", nil)
}

// ListCatalogue implements RoleHandler. The permission catalogue is global;
// any authenticated principal may browse it.
func (h *RoleHandlerImpl) ListCatalogue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := access.ListPermissionsFilter{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	list, err := h.accessService.ListPermissions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: list.Count,
		TotalPages: int((list.Count + int64(limit) - 1) / int64(limit)),
	}
	response.SuccessWithMeta(w, list, meta)
}
