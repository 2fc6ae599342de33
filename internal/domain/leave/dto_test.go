package leave

import (
	"strings"
	"testing"

	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

func validCreateRequest() CreateLeaveRequestRequest {
	return CreateLeaveRequestRequest{
		LeaveTypeID: "0190c548-5d32-7a01-b7a2-111111111111",
		Kind:        "full_day",
		DayRange:    "full_day",
		StartDate:   "2026-09-07",
		EndDate:     "2026-09-09",
		Reason:      "Family trip",
		ManagerIDs:  []string{"0190c548-5d32-7a01-b7a2-222222222222"},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	return errs.ToMap()
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validCreateRequest()
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("half day with full day range fails", func(t *testing.T) {
		req := validCreateRequest()
		req.Kind = "half_day"
		req.DayRange = "full_day"
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["range"]; !ok {
			t.Errorf("expected range error, got %v", errMap)
		}
	})

	t.Run("short leave accepts quarters only", func(t *testing.T) {
		req := validCreateRequest()
		req.Kind = "short_leave"

		req.DayRange = "third_quarter"
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		req.DayRange = "first_half"
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["range"]; !ok {
			t.Errorf("expected range error, got %v", errMap)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		req := validCreateRequest()
		req.Kind = "sabbatical"
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["type"]; !ok {
			t.Errorf("expected type error, got %v", errMap)
		}
	})

	t.Run("end date before start date", func(t *testing.T) {
		req := validCreateRequest()
		req.StartDate = "2026-09-09"
		req.EndDate = "2026-09-07"
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["end_date"]; !ok {
			t.Errorf("expected end_date error, got %v", errMap)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		req := validCreateRequest()
		req.StartDate = "07-09-2026"
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["start_date"]; !ok {
			t.Errorf("expected start_date error, got %v", errMap)
		}
	})

	t.Run("empty reason", func(t *testing.T) {
		req := validCreateRequest()
		req.Reason = "  "
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["reason"]; !ok {
			t.Errorf("expected reason error, got %v", errMap)
		}
	})

	t.Run("reason too long", func(t *testing.T) {
		req := validCreateRequest()
		req.Reason = strings.Repeat("x", maxReasonLength+1)
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["reason"]; !ok {
			t.Errorf("expected reason error, got %v", errMap)
		}
	})

	t.Run("no managers", func(t *testing.T) {
		req := validCreateRequest()
		req.ManagerIDs = nil
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["managers"]; !ok {
			t.Errorf("expected managers error, got %v", errMap)
		}
	})

	t.Run("duplicate managers", func(t *testing.T) {
		req := validCreateRequest()
		req.ManagerIDs = []string{
			"0190c548-5d32-7a01-b7a2-222222222222",
			"0190c548-5d32-7a01-b7a2-222222222222",
		}
		errMap := fieldErrors(t, req.Validate())
		if _, ok := errMap["managers"]; !ok {
			t.Errorf("expected managers error, got %v", errMap)
		}
	})
}

func TestDecisionRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		decision string
		wantErr  bool
	}{
		{"approved", "approved", false},
		{"rejected", "rejected", false},
		{"recommended", "recommended", false},
		{"pending is not actionable", "pending", true},
		{"unknown decision", "maybe", true},
		{"empty decision", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DecisionRequest{
				RequestID: "0190c548-5d32-7a01-b7a2-333333333333",
				Decision:  tt.decision,
			}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLeaveRequestFilterValidate(t *testing.T) {
	bad := "definitely-not-a-status"
	filter := LeaveRequestFilter{Status: &bad}
	if filter.Validate() == nil {
		t.Error("expected error for unknown status")
	}

	good := "pending"
	date := "2026-01-15"
	filter = LeaveRequestFilter{Status: &good, StartDate: &date}
	if err := filter.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
