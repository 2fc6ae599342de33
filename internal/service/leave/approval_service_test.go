package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/leavehq/leave-backend-go/internal/domain/leave"
)

// Two managers: first approval leaves the request pending, the second
// completes it.
func TestRecordDecision_AllApprovalsRequired(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	m1 := createTestUser(t, ctx, orgID)
	m2 := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, m1, m2))
	require.NoError(t, err)

	after1, err := svc.RecordDecision(ctx, orgPrincipal(m1, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusPending, after1.Status)

	after2, err := svc.RecordDecision(ctx, orgPrincipal(m2, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusApproved, after2.Status)
}

// A rejection is terminal: the other manager's later approval is refused.
func TestRecordDecision_RejectionIsTerminal(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	m1 := createTestUser(t, ctx, orgID)
	m2 := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, m1, m2))
	require.NoError(t, err)

	remark := "Team is short-staffed that week"
	rejected, err := svc.RecordDecision(ctx, orgPrincipal(m1, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "rejected", Remark: &remark})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusRejected, rejected.Status)

	_, err = svc.RecordDecision(ctx, orgPrincipal(m2, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	assert.ErrorIs(t, err, domain.ErrLeaveRequestAlreadyProcessed)
}

// Single manager: recommend first, then change to approve before the
// aggregate turns terminal.
func TestRecordDecision_RecommendThenApprove(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	manager := orgPrincipal(managerID, orgID)

	recommended, err := svc.RecordDecision(ctx, manager, domain.DecisionRequest{RequestID: created.ID, Decision: "recommended"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusRecommended, recommended.Status)

	approved, err := svc.RecordDecision(ctx, manager, domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRequestStatusApproved, approved.Status)
}

func TestRecordDecision_Idempotent(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	m1 := createTestUser(t, ctx, orgID)
	m2 := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, m1, m2))
	require.NoError(t, err)

	manager := orgPrincipal(m1, orgID)
	req := domain.DecisionRequest{RequestID: created.ID, Decision: "recommended"}

	first, err := svc.RecordDecision(ctx, manager, req)
	require.NoError(t, err)

	// Resubmitting the identical decision changes nothing.
	second, err := svc.RecordDecision(ctx, manager, req)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)

	d, ok := second.DecisionFor(m1)
	require.True(t, ok)
	assert.Equal(t, domain.DecisionRecommended, d.Decision)
}

func TestRecordDecision_NonAssignee(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	bystanderID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	_, err = svc.RecordDecision(ctx, orgPrincipal(bystanderID, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "approved"})
	assert.ErrorIs(t, err, domain.ErrNotAssignedManager)
}

func TestRecordDecision_InvalidDecisionValue(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	truncateLeaveTables(t, ctx)

	orgID := createTestOrg(t, ctx)
	requesterID := createTestUser(t, ctx, orgID)
	managerID := createTestUser(t, ctx, orgID)
	leaveTypeID := createTestLeaveType(t, ctx, orgID)

	svc := newTestLeaveService()
	created, err := svc.CreateLeaveRequest(ctx, orgPrincipal(requesterID, orgID), newCreateRequest(leaveTypeID, managerID))
	require.NoError(t, err)

	_, err = svc.RecordDecision(ctx, orgPrincipal(managerID, orgID), domain.DecisionRequest{RequestID: created.ID, Decision: "pending"})
	assert.Error(t, err)
}
