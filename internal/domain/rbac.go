package domain

// Roles stored in user_roles.
const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// Resources and actions checked by the policy.
const (
	ResourceProfile    = "profile"
	ResourceLeave      = "leave"
	ResourceAttendance = "attendance"
	ResourcePayroll    = "payroll"
	ResourceDashboard  = "dashboard"
	ResourceRole       = "role"

	ActionRead      = "read"
	ActionReadOwn   = "read_own"
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionUpdateOwn = "update_own"
	ActionDelete    = "delete"
	ActionApprove   = "approve"
	ActionExport    = "export"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

func IsValidRole(role string) bool {
	return role == RoleHR || role == RoleEmployee
}
