package events

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequested = "leave.requested"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
)

type LeaveLifecycleEvent struct {
	Base
	LeaveID         string `json:"leave_id"`
	LeaveType       string `json:"leave_type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Days            int    `json:"days"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}
