package payroll

import "github.com/shopspring/decimal"

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

type ListQuery struct {
	Department string
}

type ExportQuery struct {
	Format     string
	Department string
}

type PayrollEntry struct {
	UserID        string           `json:"user_id"`
	FullName      string           `json:"full_name"`
	Email         string           `json:"email"`
	Department    *string          `json:"department"`
	Position      *string          `json:"position"`
	Status        string           `json:"status"`
	AnnualSalary  *decimal.Decimal `json:"annual_salary"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary"`
	Display       string           `json:"display,omitempty"`
}

type PayrollSummary struct {
	Entries         []PayrollEntry  `json:"entries"`
	TotalEmployees  int             `json:"total_employees"`
	ActiveEmployees int             `json:"active_employees"`
	TotalAnnual     decimal.Decimal `json:"total_annual"`
	TotalMonthly    decimal.Decimal `json:"total_monthly"`
	AverageAnnual   decimal.Decimal `json:"average_annual"`
}

// ExportFile is a rendered payroll export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
