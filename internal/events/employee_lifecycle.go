package events

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee.created"
	EmployeeDeleted = "employee.deleted"
)

type EmployeeLifecycleEvent struct {
	Base
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}
