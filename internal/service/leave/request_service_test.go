package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

func TestCreateLeaveRequest(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	principal := orgPrincipal(requesterID, orgID)

	created, err := svc.CreateLeaveRequest(ctx, principal, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	assert.Equal(t, domain.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, requesterID, created.RequesterID)
	require.Len(t, created.Decisions, 1)
	assert.Equal(t, domain.DecisionPending, created.Decisions[0].Decision)
	assert.Equal(t, managerID, created.Decisions[0].ManagerID)
}

func TestCreateLeaveRequest_ManagerOutsideOrganization(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	otherOrgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	outsiderID := createTestUser(t, ctx, otherOrgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	principal := orgPrincipal(requesterID, orgID)

	_, err := svc.CreateLeaveRequest(ctx, principal, newCreateRequest(leaveTypeID, outsiderID))
	assert.ErrorIs(t, err, domain.ErrManagerNotInOrganization)
}

func TestCreateLeaveRequest_RequesterAsManager(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	principal := orgPrincipal(requesterID, orgID)

	_, err := svc.CreateLeaveRequest(ctx, principal, newCreateRequest(leaveTypeID, requesterID))
	assert.Error(t, err)
}

func TestCreateLeaveRequest_InactiveLeaveType(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	_, err := testLeaveDB.Exec(ctx, `UPDATE leave_types SET is_active = FALSE WHERE id = $1`, leaveTypeID)
	require.NoError(t, err)

	svc := newTestLeaveService()
	principal := orgPrincipal(requesterID, orgID)

	_, err = svc.CreateLeaveRequest(ctx, principal, newCreateRequest(leaveTypeID, managerID))
	assert.ErrorIs(t, err, domain.ErrLeaveTypeInactive)
}

func TestUpdateLeaveRequest_OwnerAndPendingOnly(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	otherUserID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	owner := orgPrincipal(requesterID, orgID)

	created, err := svc.CreateLeaveRequest(ctx, owner, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	updateReq := domain.UpdateLeaveRequestRequest{
		ID:          created.ID,
		LeaveTypeID: leaveTypeID,
		Kind:        "half_day",
		DayRange:    "first_half",
		StartDate:   "2026-09-08",
		EndDate:     "2026-09-08",
		Reason:      "Changed plans",
		ManagerIDs:  []string{managerID},
	}

	// Not the owner
	_, err = svc.UpdateLeaveRequest(ctx, orgPrincipal(otherUserID, orgID), updateReq)
	assert.ErrorIs(t, err, domain.ErrNotRequestOwner)

	// Owner, pending
	updated, err := svc.UpdateLeaveRequest(ctx, owner, updateReq)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveKindHalfDay, updated.Kind)
	assert.Equal(t, domain.DayRangeFirstHalf, updated.DayRange)

	// No longer pending
	manager := orgPrincipal(managerID, orgID)
	_, err = svc.RecordDecision(ctx, manager, domain.DecisionRequest{RequestID: created.ID, Decision: "rejected"})
	require.NoError(t, err)

	_, err = svc.UpdateLeaveRequest(ctx, owner, updateReq)
	assert.ErrorIs(t, err, domain.ErrLeaveRequestNotPending)
}

func TestCancelLeaveRequest(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	owner := orgPrincipal(requesterID, orgID)

	created, err := svc.CreateLeaveRequest(ctx, owner, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	cancelled, err := svc.CancelLeaveRequest(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusCancelled, cancelled.Status)

	// The record is retained, not deleted.
	fetched, err := svc.GetLeaveRequest(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusCancelled, fetched.Status)

	// Cancelling twice fails: no longer pending.
	_, err = svc.CancelLeaveRequest(ctx, owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrLeaveRequestNotPending)

	// No decision accepted on a cancelled request.
	manager := orgPrincipal(managerID, orgID)
	_, err = svc.RecordDecision(ctx, manager, domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	assert.ErrorIs(t, err, domain.ErrLeaveRequestAlreadyProcessed)
}

// A cancel racing an approval must observe the approval: the cancel waits on
// the row lock the decision path holds and then fails the pending check,
// instead of overwriting an approved request with cancelled.
func TestCancelLeaveRequest_LosesRaceAgainstApproval(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	owner := orgPrincipal(requesterID, orgID)

	created, err := svc.CreateLeaveRequest(ctx, owner, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	// Hold the row lock in an open transaction and approve the request,
	// the way the decision path does.
	requestRepo := postgresql.NewLeaveRequestRepository(testLeaveDB)
	tx, err := testLeaveDB.BeginTx(ctx)
	require.NoError(t, err)
	txCtx := postgresql.ContextWithTx(ctx, tx)

	_, err = requestRepo.GetByIDForUpdate(txCtx, created.ID)
	require.NoError(t, err)
	require.NoError(t, requestRepo.SetDecision(txCtx, created.ID, managerID, domain.DecisionApproved, nil))
	require.NoError(t, requestRepo.UpdateStatus(txCtx, created.ID, domain.LeaveRequestStatusApproved))

	// The cancel starts while the approval is uncommitted and must block on
	// the lock rather than read the stale pending status.
	cancelErr := make(chan error, 1)
	go func() {
		_, err := svc.CancelLeaveRequest(ctx, owner, created.ID)
		cancelErr <- err
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tx.Commit(ctx))

	err = <-cancelErr
	assert.ErrorIs(t, err, domain.ErrLeaveRequestNotPending)

	fetched, err := svc.GetLeaveRequest(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusApproved, fetched.Status)
	decision, ok := fetched.DecisionFor(managerID)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionApproved, decision.Decision)
}

// Same race on the edit path: an update racing a rejection must wait for the
// lock and then fail the pending check, leaving the rejected request intact.
func TestUpdateLeaveRequest_LosesRaceAgainstRejection(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	owner := orgPrincipal(requesterID, orgID)

	created, err := svc.CreateLeaveRequest(ctx, owner, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	requestRepo := postgresql.NewLeaveRequestRepository(testLeaveDB)
	tx, err := testLeaveDB.BeginTx(ctx)
	require.NoError(t, err)
	txCtx := postgresql.ContextWithTx(ctx, tx)

	_, err = requestRepo.GetByIDForUpdate(txCtx, created.ID)
	require.NoError(t, err)
	require.NoError(t, requestRepo.SetDecision(txCtx, created.ID, managerID, domain.DecisionRejected, nil))
	require.NoError(t, requestRepo.UpdateStatus(txCtx, created.ID, domain.LeaveRequestStatusRejected))

	update := domain.UpdateLeaveRequestRequest{
		ID:          created.ID,
		LeaveTypeID: leaveTypeID,
		Kind:        "full_day",
		DayRange:    "full_day",
		StartDate:   "2026-09-14",
		EndDate:     "2026-09-16",
		Reason:      "Moved the trip",
		ManagerIDs:  []string{managerID},
	}

	updateErr := make(chan error, 1)
	go func() {
		_, err := svc.UpdateLeaveRequest(ctx, owner, update)
		updateErr <- err
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tx.Commit(ctx))

	err = <-updateErr
	assert.ErrorIs(t, err, domain.ErrLeaveRequestNotPending)

	fetched, err := svc.GetLeaveRequest(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusRejected, fetched.Status)
	assert.Equal(t, created.Reason, fetched.Reason)
}

func TestListLeaveRequests_Scoping(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	requester := orgPrincipal(requesterID, orgID)
	manager := orgPrincipal(managerID, orgID)

	_, err := svc.CreateLeaveRequest(ctx, requester, newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	mine, err := svc.ListMyLeaveRequests(ctx, requester, domain.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Count)

	// The manager filed nothing.
	managersOwn, err := svc.ListMyLeaveRequests(ctx, manager, domain.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), managersOwn.Count)

	// But it shows up in the manager's inbox.
	inbox, err := svc.ListAssignedLeaveRequests(ctx, manager, domain.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inbox.Count)

	status := "pending"
	filtered, err := svc.ListLeaveRequests(ctx, requester, domain.LeaveRequestFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Count)

	status = "approved"
	filtered, err = svc.ListLeaveRequests(ctx, requester, domain.LeaveRequestFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(0), filtered.Count)
}

func TestGetLeaveRequest_CrossOrganizationHidden(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	otherOrgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	outsiderID := createTestUser(t, ctx, otherOrgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	_, err = svc.GetLeaveRequest(ctx, orgPrincipal(outsiderID, otherOrgID), created.ID)
	assert.ErrorIs(t, err, domain.ErrLeaveRequestNotFound)
}
