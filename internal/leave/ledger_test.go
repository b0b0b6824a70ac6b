package leave_test

import (
	"errors"
	"testing"
	"time"

	"dayflow/internal/leave"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidateSubmission(t *testing.T) {
	balance := leave.Balance{Annual: 5, Sick: 2}

	tests := []struct {
		name      string
		leaveType string
		days      int
		wantErr   bool
	}{
		{"annual within balance", leave.TypeAnnual, 5, false},
		{"annual over balance", leave.TypeAnnual, 6, true},
		{"sick within balance", leave.TypeSick, 1, false},
		{"sick over balance", leave.TypeSick, 3, true},
		{"unpaid ignores balance", leave.TypeUnpaid, 90, false},
		{"maternity ignores balance", leave.TypeMaternity, 120, false},
		{"paternity ignores balance", leave.TypePaternity, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := leave.ValidateSubmission(balance, tt.leaveType, tt.days)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var ib *leave.InsufficientBalanceError
			assert.True(t, errors.As(err, &ib))
			assert.Equal(t, tt.leaveType, ib.LeaveType)
			assert.Equal(t, tt.days, ib.Requested)
			assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		})
	}

	t.Run("untracked types pass with zero balance", func(t *testing.T) {
		for _, lt := range []string{leave.TypeUnpaid, leave.TypeMaternity, leave.TypePaternity} {
			assert.NoError(t, leave.ValidateSubmission(leave.Balance{}, lt, 365))
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		err := leave.ValidateSubmission(balance, "sabbatical", 1)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("succeeds iff days <= balance", func(t *testing.T) {
		for remaining := 0; remaining <= 20; remaining++ {
			for days := 1; days <= 25; days++ {
				err := leave.ValidateSubmission(leave.Balance{Annual: remaining}, leave.TypeAnnual, days)
				assert.Equal(t, days <= remaining, err == nil, "remaining=%d days=%d", remaining, days)
			}
		}
	})
}

func TestCountDays(t *testing.T) {
	assert.Equal(t, 6, leave.CountDays(date("2024-01-15"), date("2024-01-20")))
	assert.Equal(t, 1, leave.CountDays(date("2024-01-15"), date("2024-01-15")))
	assert.Equal(t, 3, leave.CountDays(date("2024-02-28"), date("2024-03-01")))
}

func TestValidateDateRange(t *testing.T) {
	today := date("2024-01-10")

	assert.NoError(t, leave.ValidateDateRange(date("2024-01-10"), date("2024-01-10"), today))
	assert.NoError(t, leave.ValidateDateRange(date("2024-01-15"), date("2024-01-20"), today.Add(15*time.Hour)))
	assert.ErrorIs(t, leave.ValidateDateRange(date("2024-01-20"), date("2024-01-15"), today), leaveerrors.ErrInvalidDateRange)
	assert.ErrorIs(t, leave.ValidateDateRange(date("2024-01-09"), date("2024-01-12"), today), leaveerrors.ErrStartDateInPast)
}

func TestApplyApproval(t *testing.T) {
	at := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)

	t.Run("debits annual balance", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeAnnual, Days: 5, Status: leave.StatusPending}

		got, err := leave.ApplyApproval(req, leave.Balance{Annual: 12, Sick: 10}, "hr-1", at)

		assert.NoError(t, err)
		assert.Equal(t, 7, got.Annual)
		assert.Equal(t, 10, got.Sick)
		assert.Equal(t, leave.StatusApproved, req.Status)
		assert.Equal(t, "hr-1", *req.ReviewedBy)
		assert.True(t, at.Equal(*req.ReviewedAt))
	})

	t.Run("debits sick balance", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeSick, Days: 2, Status: leave.StatusPending}

		got, err := leave.ApplyApproval(req, leave.Balance{Annual: 12, Sick: 10}, "hr-1", at)

		assert.NoError(t, err)
		assert.Equal(t, leave.Balance{Annual: 12, Sick: 8}, got)
	})

	t.Run("unpaid leaves balances alone", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeUnpaid, Days: 30, Status: leave.StatusPending}

		got, err := leave.ApplyApproval(req, leave.Balance{Annual: 1, Sick: 1}, "hr-1", at)

		assert.NoError(t, err)
		assert.Equal(t, leave.Balance{Annual: 1, Sick: 1}, got)
	})

	t.Run("already decided requests are not debited again", func(t *testing.T) {
		for _, status := range []string{leave.StatusApproved, leave.StatusRejected} {
			req := &leave.LeaveRequest{LeaveType: leave.TypeAnnual, Days: 5, Status: status}
			balance := leave.Balance{Annual: 12, Sick: 10}

			got, err := leave.ApplyApproval(req, balance, "hr-1", at)

			assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
			assert.Equal(t, balance, got)
			assert.Equal(t, status, req.Status)
		}
	})

	t.Run("second approval of the same request fails", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeAnnual, Days: 5, Status: leave.StatusPending}
		balance, err := leave.ApplyApproval(req, leave.Balance{Annual: 12}, "hr-1", at)
		assert.NoError(t, err)

		again, err := leave.ApplyApproval(req, balance, "hr-2", at)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Equal(t, 7, again.Annual)
	})

	t.Run("refuses to go negative", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeAnnual, Days: 5, Status: leave.StatusPending}

		got, err := leave.ApplyApproval(req, leave.Balance{Annual: 3}, "hr-1", at)

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Equal(t, 3, got.Annual)
		assert.Equal(t, leave.StatusPending, req.Status)
	})
}

func TestApplyRejection(t *testing.T) {
	at := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)

	t.Run("sets status and reason", func(t *testing.T) {
		req := &leave.LeaveRequest{LeaveType: leave.TypeAnnual, Days: 5, Status: leave.StatusPending}

		err := leave.ApplyRejection(req, "hr-1", " team at capacity ", at)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, req.Status)
		assert.Equal(t, "team at capacity", *req.RejectionReason)
	})

	t.Run("reason required", func(t *testing.T) {
		req := &leave.LeaveRequest{Status: leave.StatusPending}

		err := leave.ApplyRejection(req, "hr-1", "  ", at)

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.Equal(t, leave.StatusPending, req.Status)
	})

	t.Run("terminal states", func(t *testing.T) {
		req := &leave.LeaveRequest{Status: leave.StatusApproved}

		err := leave.ApplyRejection(req, "hr-1", "late", at)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Equal(t, leave.StatusApproved, req.Status)
	})
}
