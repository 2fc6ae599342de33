package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetAssignedRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	RecommendRequest(w http.ResponseWriter, r *http.Request)

	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func strPtrIfSet(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// parseLeaveFilter reads listing filters from the query string.
func parseLeaveFilter(r *http.Request) leave.LeaveRequestFilter {
	q := r.URL.Query()

	filter := leave.LeaveRequestFilter{
		RequesterID: strPtrIfSet(q.Get("requester_uuid")),
		LeaveTypeID: strPtrIfSet(q.Get("leave_type_uuid")),
		Status:      strPtrIfSet(q.Get("status")),
		StartDate:   strPtrIfSet(q.Get("start_date")),
		EndDate:     strPtrIfSet(q.Get("end_date")),
		Search:      strPtrIfSet(q.Get("search")),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	return filter
}

func paginationMeta(filter leave.LeaveRequestFilter, total int64) *response.Meta {
	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := parseLeaveFilter(r)
	list, err := l.leaveService.ListLeaveRequests(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list, paginationMeta(filter, list.Count))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := parseLeaveFilter(r)
	list, err := l.leaveService.ListMyLeaveRequests(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list, paginationMeta(filter, list.Count))
}

// GetAssignedRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetAssignedRequests(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := parseLeaveFilter(r)
	list, err := l.leaveService.ListAssignedLeaveRequests(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list, paginationMeta(filter, list.Count))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), principal, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdateLeaveRequest(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", updated)
}

// CancelRequest implements LeaveHandler. A pending request transitions to
// cancelled; nothing is deleted.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	cancelled, err := l.leaveService.CancelLeaveRequest(r.Context(), principal, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", cancelled)
}

type decisionBody struct {
	Remark *string `json:"remark,omitempty"`
}

func (l *LeaveHandlerImpl) recordDecision(w http.ResponseWriter, r *http.Request, decision leave.Decision) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body decisionBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			slog.Error("RecordDecision decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	req := leave.DecisionRequest{
		RequestID: chi.URLParam(r, "id"),
		Decision:  string(decision),
		Remark:    body.Remark,
	}

	updated, err := l.leaveService.RecordDecision(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", updated)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.recordDecision(w, r, leave.DecisionApproved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.recordDecision(w, r, leave.DecisionRejected)
}

// RecommendRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RecommendRequest(w http.ResponseWriter, r *http.Request) {
	l.recordDecision(w, r, leave.DecisionRecommended)
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveType(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", created)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := l.leaveService.UpdateLeaveType(r.Context(), principal, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", nil)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	typeID := chi.URLParam(r, "id")
	if typeID == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := l.leaveService.DeleteLeaveType(r.Context(), principal, typeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted", nil)
}
