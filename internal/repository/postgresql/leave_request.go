package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

// isWriteConflict reports whether the error is a serialization failure or a
// deadlock, which concurrent writers on the same request can trigger.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, organization_id, requester_id, leave_type_id,
			start_date, end_date, kind, day_range, reason, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	request.ID = newUUID()
	err := q.QueryRow(ctx, query,
		request.ID, request.OrganizationID, request.RequesterID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Kind, request.DayRange, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	decisions := make([]leave.ManagerDecision, 0, len(request.Decisions))
	for _, d := range request.Decisions {
		d.ID = newUUID()
		d.LeaveRequestID = request.ID
		d.Decision = leave.DecisionPending

		insertDecision := `
			INSERT INTO manager_decisions (
				id, leave_request_id, manager_id, decision, remark,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err := q.QueryRow(ctx, insertDecision,
			d.ID, d.LeaveRequestID, d.ManagerID, d.Decision, d.Remark,
		).Scan(&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to insert manager decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	request.Decisions = decisions

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.organization_id, lr.requester_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.kind, lr.day_range, lr.reason, lr.status,
			   lr.created_at, lr.updated_at,
			   lt.name as leave_type_name,
			   u.full_name as requester_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN users u ON lr.requester_id = u.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var leaveTypeName, requesterName string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.OrganizationID, &req.RequesterID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.Kind, &req.DayRange, &req.Reason, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
		&leaveTypeName, &requesterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.LeaveTypeName = &leaveTypeName
	req.RequesterName = &requesterName

	decisions, err := r.GetDecisions(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.Decisions = decisions

	return req, nil
}

// GetByIDForUpdate locks the request row until the surrounding transaction
// commits, so concurrent decisions on the same request serialize.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, requester_id, leave_type_id,
			   start_date, end_date, kind, day_range, reason, status,
			   created_at, updated_at
		FROM leave_requests
		WHERE id = $1
		FOR UPDATE
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.OrganizationID, &req.RequesterID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.Kind, &req.DayRange, &req.Reason, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	decisions, err := r.GetDecisions(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.Decisions = decisions

	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM leave_requests lr
		INNER JOIN leave_types lt ON lr.leave_type_id = lt.id
		INNER JOIN users u ON lr.requester_id = u.id
		WHERE lr.organization_id = $1
	`

	args := []interface{}{organizationID}
	argIdx := 2

	whereClauses := []string{}

	if filter.RequesterID != nil && *filter.RequesterID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.requester_id = $%d", argIdx))
		args = append(args, *filter.RequesterID)
		argIdx++
	}

	if filter.ManagerID != nil && *filter.ManagerID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM manager_decisions md WHERE md.leave_request_id = lr.id AND md.manager_id = $%d)", argIdx))
		args = append(args, *filter.ManagerID)
		argIdx++
	}

	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(lr.reason ILIKE $%d OR u.full_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if len(whereClauses) > 0 {
		baseQuery += " AND " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := `
		SELECT lr.id, lr.organization_id, lr.requester_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.kind, lr.day_range, lr.reason, lr.status,
			   lr.created_at, lr.updated_at,
			   lt.name as leave_type_name,
			   u.full_name as requester_name
	` + baseQuery

	orderBy := "lr.created_at"
	switch filter.SortBy {
	case "start_date":
		orderBy = "lr.start_date"
	case "end_date":
		orderBy = "lr.end_date"
	case "status":
		orderBy = "lr.status"
	case "requester_name":
		orderBy = "u.full_name"
	}
	if strings.ToLower(filter.SortOrder) == "asc" {
		orderBy += " ASC"
	} else {
		orderBy += " DESC"
	}
	selectQuery += " ORDER BY " + orderBy

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var leaveTypeName, requesterName string

		err := rows.Scan(
			&req.ID, &req.OrganizationID, &req.RequesterID, &req.LeaveTypeID,
			&req.StartDate, &req.EndDate, &req.Kind, &req.DayRange, &req.Reason, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
			&leaveTypeName, &requesterName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}

		req.LeaveTypeName = &leaveTypeName
		req.RequesterName = &requesterName
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, fields leave.UpdateLeaveRequestFields) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if fields.LeaveTypeID != nil {
		updates = append(updates, fmt.Sprintf("leave_type_id = $%d", argIdx))
		args = append(args, *fields.LeaveTypeID)
		argIdx++
	}
	if fields.Kind != nil {
		updates = append(updates, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *fields.Kind)
		argIdx++
	}
	if fields.DayRange != nil {
		updates = append(updates, fmt.Sprintf("day_range = $%d", argIdx))
		args = append(args, *fields.DayRange)
		argIdx++
	}
	if fields.StartDate != nil {
		updates = append(updates, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, *fields.StartDate)
		argIdx++
	}
	if fields.EndDate != nil {
		updates = append(updates, fmt.Sprintf("end_date = $%d", argIdx))
		args = append(args, *fields.EndDate)
		argIdx++
	}
	if fields.Reason != nil {
		updates = append(updates, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *fields.Reason)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave request update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, fields.ID)

	sql := "UPDATE leave_requests SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		if isWriteConflict(err) {
			return leave.ErrDecisionConflict
		}
		return fmt.Errorf("failed to update leave request with id %s: %w", fields.ID, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`
	var updatedID string
	if err := q.QueryRow(ctx, query, status, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		if isWriteConflict(err) {
			return leave.ErrDecisionConflict
		}
		return fmt.Errorf("failed to update status for leave request with id %s: %w", id, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) GetDecisions(ctx context.Context, requestID string) ([]leave.ManagerDecision, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT md.id, md.leave_request_id, md.manager_id, md.decision, md.remark, md.decided_at,
			   md.created_at, md.updated_at,
			   u.full_name as manager_name
		FROM manager_decisions md
		JOIN users u ON md.manager_id = u.id
		WHERE md.leave_request_id = $1
		ORDER BY md.created_at ASC
	`

	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query manager decisions: %w", err)
	}
	defer rows.Close()

	var decisions []leave.ManagerDecision
	for rows.Next() {
		var d leave.ManagerDecision
		var managerName string
		err := rows.Scan(
			&d.ID, &d.LeaveRequestID, &d.ManagerID, &d.Decision, &d.Remark, &d.DecidedAt,
			&d.CreatedAt, &d.UpdatedAt,
			&managerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager decision: %w", err)
		}
		d.ManagerName = &managerName
		decisions = append(decisions, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return decisions, nil
}

func (r *leaveRequestRepositoryImpl) SetDecision(ctx context.Context, requestID, managerID string, decision leave.Decision, remark *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE manager_decisions
		SET decision = $1, remark = $2, decided_at = NOW(), updated_at = NOW()
		WHERE leave_request_id = $3 AND manager_id = $4
		RETURNING id
	`
	var decisionID string
	if err := q.QueryRow(ctx, query, decision, remark, requestID, managerID).Scan(&decisionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrNotAssignedManager
		}
		if isWriteConflict(err) {
			return leave.ErrDecisionConflict
		}
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) ReplaceAssignees(ctx context.Context, requestID string, managerIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM manager_decisions WHERE leave_request_id = $1`, requestID); err != nil {
		return fmt.Errorf("failed to clear manager decisions: %w", err)
	}

	insertDecision := `
		INSERT INTO manager_decisions (
			id, leave_request_id, manager_id, decision, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	for _, managerID := range managerIDs {
		if _, err := q.Exec(ctx, insertDecision, newUUID(), requestID, managerID, leave.DecisionPending); err != nil {
			return fmt.Errorf("failed to insert manager decision: %w", err)
		}
	}
	return nil
}
