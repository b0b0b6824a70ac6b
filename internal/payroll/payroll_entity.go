package payroll

import "time"

const statusActive = "active"

// SalaryRow is the payroll projection of a profile. Salary is annual, in
// minor units, and nil when HR has not set one.
type SalaryRow struct {
	UserID     string
	FullName   string
	Email      string
	Department *string
	Position   *string
	Salary     *int64
	Status     string
	JoinDate   *time.Time
}
