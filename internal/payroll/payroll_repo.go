package payroll

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	Department string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	ListSalaries(ctx context.Context, filter ListFilter) ([]SalaryRow, error)
	FindByUserID(ctx context.Context, userID string) (*SalaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const salaryColumns = "user_id, full_name, email, department, position, salary, status, join_date"

func (r *repository) ListSalaries(ctx context.Context, filter ListFilter) ([]SalaryRow, error) {
	var rows []SalaryRow
	q := r.db.WithContext(ctx).
		Table("profiles").
		Select(salaryColumns)

	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}

	err := q.Order("full_name ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*SalaryRow, error) {
	var row SalaryRow
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select(salaryColumns).
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
