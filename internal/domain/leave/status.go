package leave

// AggregateStatus derives a request's aggregate status from its full decision
// set. The policy, in precedence order:
//
//  1. any rejected        -> Rejected
//  2. all approved        -> Approved
//  3. any recommended     -> Recommended
//  4. otherwise           -> Pending
//
// Recommended therefore wins over a partial set of approvals; only a complete
// set of approvals yields Approved. Cancelled is never produced here - it is
// reached only by the requester withdrawing a pending request.
func AggregateStatus(decisions []ManagerDecision) LeaveRequestStatus {
	anyRejected := false
	anyRecommended := false
	allApproved := len(decisions) > 0

	for _, d := range decisions {
		switch d.Decision {
		case DecisionRejected:
			anyRejected = true
		case DecisionRecommended:
			anyRecommended = true
			allApproved = false
		case DecisionApproved:
			// counts toward allApproved
		default:
			allApproved = false
		}
	}

	switch {
	case anyRejected:
		return LeaveRequestStatusRejected
	case allApproved:
		return LeaveRequestStatusApproved
	case anyRecommended:
		return LeaveRequestStatusRecommended
	}
	return LeaveRequestStatusPending
}
