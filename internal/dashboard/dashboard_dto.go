package dashboard

import (
	"dayflow/internal/activity"

	"github.com/shopspring/decimal"
)

type HRStats struct {
	TotalEmployees int64           `json:"total_employees"`
	PresentToday   int64           `json:"present_today"`
	AttendanceRate int             `json:"attendance_rate"`
	PendingLeaves  int64           `json:"pending_leaves"`
	MonthlyPayroll decimal.Decimal `json:"monthly_payroll"`
}

type EmployeeStats struct {
	RemainingAnnualLeave int              `json:"remaining_annual_leave"`
	RemainingSickLeave   int              `json:"remaining_sick_leave"`
	Salary               *decimal.Decimal `json:"salary"`
	AttendanceRate       int              `json:"attendance_rate"`
	PendingRequests      int64            `json:"pending_requests"`
	DaysPresent          int64            `json:"days_present"`
}

// StatsResponse carries exactly one of HR or Employee, picked by Role.
type StatsResponse struct {
	Role     string         `json:"role"`
	HR       *HRStats       `json:"hr,omitempty"`
	Employee *EmployeeStats `json:"employee,omitempty"`
}

type ActivitiesResponse struct {
	Items []activity.FeedItem `json:"items"`
}
