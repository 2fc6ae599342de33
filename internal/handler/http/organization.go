package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/organization"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	My(w http.ResponseWriter, r *http.Request)
}

type OrganizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &OrganizationHandlerImpl{organizationService: organizationService}
}

// List implements OrganizationHandler.
func (h *OrganizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	orgs, err := h.organizationService.ListOrganizations(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, orgs)
}

// Create implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req organization.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOrganization decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	org, err := h.organizationService.CreateOrganization(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Organization created", org)
}

// Get implements OrganizationHandler.
func (h *OrganizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	orgID := chi.URLParam(r, "id")
	if orgID == "" {
		response.BadRequest(w, "Organization ID is required", nil)
		return
	}

	org, err := h.organizationService.GetOrganization(r.Context(), principal, orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, org)
}

// My implements OrganizationHandler.
func (h *OrganizationHandlerImpl) My(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	org, err := h.organizationService.MyOrganization(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, org)
}
