package leave

import "testing"

func decided(managerID string, d Decision) ManagerDecision {
	return ManagerDecision{ManagerID: managerID, Decision: d}
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name      string
		decisions []ManagerDecision
		want      LeaveRequestStatus
	}{
		{
			name:      "no decisions",
			decisions: nil,
			want:      LeaveRequestStatusPending,
		},
		{
			name:      "single pending",
			decisions: []ManagerDecision{decided("m1", DecisionPending)},
			want:      LeaveRequestStatusPending,
		},
		{
			name:      "single approved",
			decisions: []ManagerDecision{decided("m1", DecisionApproved)},
			want:      LeaveRequestStatusApproved,
		},
		{
			name:      "single rejected",
			decisions: []ManagerDecision{decided("m1", DecisionRejected)},
			want:      LeaveRequestStatusRejected,
		},
		{
			name:      "single recommended",
			decisions: []ManagerDecision{decided("m1", DecisionRecommended)},
			want:      LeaveRequestStatusRecommended,
		},
		{
			name: "one approved one pending stays pending",
			decisions: []ManagerDecision{
				decided("m1", DecisionApproved),
				decided("m2", DecisionPending),
			},
			want: LeaveRequestStatusPending,
		},
		{
			name: "all approved",
			decisions: []ManagerDecision{
				decided("m1", DecisionApproved),
				decided("m2", DecisionApproved),
				decided("m3", DecisionApproved),
			},
			want: LeaveRequestStatusApproved,
		},
		{
			name: "rejected wins over approvals",
			decisions: []ManagerDecision{
				decided("m1", DecisionApproved),
				decided("m2", DecisionRejected),
				decided("m3", DecisionApproved),
			},
			want: LeaveRequestStatusRejected,
		},
		{
			name: "rejected wins over recommended",
			decisions: []ManagerDecision{
				decided("m1", DecisionRecommended),
				decided("m2", DecisionRejected),
			},
			want: LeaveRequestStatusRejected,
		},
		{
			name: "recommended wins over partial approvals",
			decisions: []ManagerDecision{
				decided("m1", DecisionApproved),
				decided("m2", DecisionRecommended),
			},
			want: LeaveRequestStatusRecommended,
		},
		{
			name: "recommended with pending",
			decisions: []ManagerDecision{
				decided("m1", DecisionRecommended),
				decided("m2", DecisionPending),
			},
			want: LeaveRequestStatusRecommended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateStatus(tt.decisions); got != tt.want {
				t.Errorf("AggregateStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The result must not depend on the order decisions were recorded in.
func TestAggregateStatusOrderIndependent(t *testing.T) {
	forward := []ManagerDecision{
		decided("m1", DecisionApproved),
		decided("m2", DecisionRejected),
		decided("m3", DecisionRecommended),
	}
	backward := []ManagerDecision{
		decided("m3", DecisionRecommended),
		decided("m2", DecisionRejected),
		decided("m1", DecisionApproved),
	}

	if got, want := AggregateStatus(forward), AggregateStatus(backward); got != want {
		t.Errorf("aggregate depends on order: %v vs %v", got, want)
	}
	if got := AggregateStatus(forward); got != LeaveRequestStatusRejected {
		t.Errorf("AggregateStatus() = %v, want %v", got, LeaveRequestStatusRejected)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []LeaveRequestStatus{
		LeaveRequestStatusApproved,
		LeaveRequestStatusRejected,
		LeaveRequestStatusCancelled,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%v should be terminal", s)
		}
	}

	open := []LeaveRequestStatus{
		LeaveRequestStatusPending,
		LeaveRequestStatusRecommended,
	}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
}
