package leave

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

func remarkEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// RecordDecision records one manager's verdict and recomputes the request's
// aggregate status, all inside a single transaction. The request row is
// locked first so concurrent decisions on the same request serialize; a
// resubmission of the identical decision is a no-op.
func (s *leaveServiceImpl) RecordDecision(ctx context.Context, principal access.Principal, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	decision := leave.Decision(req.Decision)

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if !principal.IsSuperAdmin() && request.OrganizationID != principal.OrganizationID {
			return leave.ErrLeaveRequestNotFound
		}
		if request.Status.IsTerminal() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		existing, assigned := request.DecisionFor(principal.UserID)
		if !assigned {
			return leave.ErrNotAssignedManager
		}
		if existing.Decision == decision && remarkEqual(existing.Remark, req.Remark) {
			// Identical resubmission; aggregate cannot change.
			return nil
		}

		if err := s.requestRepo.SetDecision(txCtx, req.RequestID, principal.UserID, decision, req.Remark); err != nil {
			return err
		}

		decisions, err := s.requestRepo.GetDecisions(txCtx, req.RequestID)
		if err != nil {
			return err
		}

		next := leave.AggregateStatus(decisions)
		if next != request.Status {
			return s.requestRepo.UpdateStatus(txCtx, req.RequestID, next)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, req.RequestID)
}
