package leave

import (
	"fmt"
	"math"
	"strings"
	"time"

	leaveerrors "dayflow/internal/leave/errors"
)

// Balance holds the two tracked leave counters of a profile.
type Balance struct {
	Annual int
	Sick   int
}

// Remaining returns the counter for leaveType. Untracked types report false.
func (b Balance) Remaining(leaveType string) (int, bool) {
	switch leaveType {
	case TypeAnnual:
		return b.Annual, true
	case TypeSick:
		return b.Sick, true
	default:
		return 0, false
	}
}

func (b Balance) debit(leaveType string, days int) Balance {
	switch leaveType {
	case TypeAnnual:
		b.Annual -= days
	case TypeSick:
		b.Sick -= days
	}
	return b
}

func IsValidLeaveType(leaveType string) bool {
	switch leaveType {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

// IsTracked reports whether leaveType draws from a balance counter.
func IsTracked(leaveType string) bool {
	_, ok := Balance{}.Remaining(leaveType)
	return ok
}

type InsufficientBalanceError struct {
	LeaveType string
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s leave balance: available %d, requested %d", e.LeaveType, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return leaveerrors.ErrInsufficientBalance
}

// ValidateSubmission checks requestedDays against the matching counter.
// Unpaid, maternity and paternity leave are not limited.
func ValidateSubmission(balance Balance, leaveType string, requestedDays int) error {
	if !IsValidLeaveType(leaveType) {
		return leaveerrors.ErrInvalidLeaveType
	}
	available, tracked := balance.Remaining(leaveType)
	if !tracked {
		return nil
	}
	if requestedDays > available {
		return &InsufficientBalanceError{
			LeaveType: leaveType,
			Available: available,
			Requested: requestedDays,
		}
	}
	return nil
}

// ApplyApproval moves a pending request to approved and returns the balance
// after the debit. A counter is never taken below zero.
func ApplyApproval(req *LeaveRequest, balance Balance, reviewerID string, at time.Time) (Balance, error) {
	if req.Status != StatusPending {
		return balance, leaveerrors.ErrInvalidStatusTransition
	}
	if err := ValidateSubmission(balance, req.LeaveType, req.Days); err != nil {
		return balance, err
	}

	req.Status = StatusApproved
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	req.RejectionReason = nil
	return balance.debit(req.LeaveType, req.Days), nil
}

// ApplyRejection moves a pending request to rejected. Balances are untouched.
func ApplyRejection(req *LeaveRequest, reviewerID, reason string, at time.Time) error {
	if req.Status != StatusPending {
		return leaveerrors.ErrInvalidStatusTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return leaveerrors.ErrRejectionReasonRequired
	}

	req.Status = StatusRejected
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	req.RejectionReason = &reason
	return nil
}

// CountDays is the inclusive number of days between start and end.
func CountDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Seconds()/86400)) + 1
}

// ValidateDateRange requires start >= today and end >= start, compared as
// calendar dates.
func ValidateDateRange(start, end, today time.Time) error {
	if dateOnly(end).Before(dateOnly(start)) {
		return leaveerrors.ErrInvalidDateRange
	}
	if dateOnly(start).Before(dateOnly(today)) {
		return leaveerrors.ErrStartDateInPast
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
