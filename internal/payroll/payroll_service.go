package payroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dayflow/internal/domain"
	payrollerrors "dayflow/internal/payroll/errors"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/contextutil"
	"dayflow/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Actor, q ListQuery) (PayrollSummary, error)
	Me(ctx context.Context, actor domain.Actor) (PayrollEntry, error)
	Export(ctx context.Context, actor domain.Actor, q ExportQuery) (ExportFile, error)
}

type service struct {
	repo     Repository
	currency string
	nowFunc  func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, currency string, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, currency, time.Now, logger...)
}

func NewServiceWithClock(repo Repository, currency string, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, currency: currency, nowFunc: now, logger: l}
}

func (s *service) List(ctx context.Context, actor domain.Actor, q ListQuery) (PayrollSummary, error) {
	if !actor.IsHR() {
		return PayrollSummary{}, apperror.ErrForbidden
	}

	entries, err := s.entries(ctx, q.Department)
	if err != nil {
		return PayrollSummary{}, err
	}
	return summarize(entries), nil
}

func (s *service) Me(ctx context.Context, actor domain.Actor) (PayrollEntry, error) {
	row, err := s.repo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollEntry{}, payrollerrors.ErrProfileNotFound
		}
		return PayrollEntry{}, err
	}
	return s.toEntry(*row), nil
}

func (s *service) Export(ctx context.Context, actor domain.Actor, q ExportQuery) (ExportFile, error) {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return ExportFile{}, apperror.ErrForbidden
	}

	format := strings.ToLower(strings.TrimSpace(q.Format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatCSV {
		return ExportFile{}, payrollerrors.ErrInvalidExportFormat
	}

	entries, err := s.entries(ctx, q.Department)
	if err != nil {
		return ExportFile{}, err
	}

	file := ExportFile{
		Filename: fmt.Sprintf("payroll-%s.%s", s.nowFunc().Format("2006-01-02"), format),
	}
	switch format {
	case FormatCSV:
		file.ContentType = "text/csv"
		file.Body, err = writeCSV(entries)
	default:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Body, err = writeXLSX(entries)
	}
	if err != nil {
		s.logger.Error("payroll export failed", zap.String("request_id", rid), zap.String("format", format), zap.Error(err))
		return ExportFile{}, payrollerrors.ErrExportFailed
	}

	s.logger.Info("payroll exported",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("format", format),
		zap.Int("rows", len(entries)),
	)
	return file, nil
}

func (s *service) entries(ctx context.Context, department string) ([]PayrollEntry, error) {
	rows, err := s.repo.ListSalaries(ctx, ListFilter{Department: strings.TrimSpace(department)})
	if err != nil {
		s.logger.Error("list salaries failed", zap.Error(err))
		return nil, err
	}

	out := make([]PayrollEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.toEntry(r))
	}
	return out, nil
}

func (s *service) toEntry(r SalaryRow) PayrollEntry {
	e := PayrollEntry{
		UserID:     r.UserID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
		Position:   r.Position,
		Status:     r.Status,
	}
	if r.Salary != nil {
		annual := money.FromMinor(*r.Salary)
		monthly := money.MonthlyFromAnnual(*r.Salary)
		e.AnnualSalary = &annual
		e.MonthlySalary = &monthly
		e.Display = money.Format(*r.Salary, s.currency)
	}
	return e
}

// summarize totals salaried entries. Profiles without a salary count towards
// headcount only.
func summarize(entries []PayrollEntry) PayrollSummary {
	sum := PayrollSummary{
		Entries:        entries,
		TotalEmployees: len(entries),
		TotalAnnual:    decimal.Zero,
		TotalMonthly:   decimal.Zero,
		AverageAnnual:  decimal.Zero,
	}

	for _, e := range entries {
		if e.Status == statusActive {
			sum.ActiveEmployees++
		}
		if e.AnnualSalary != nil {
			sum.TotalAnnual = sum.TotalAnnual.Add(*e.AnnualSalary)
			sum.TotalMonthly = sum.TotalMonthly.Add(*e.MonthlySalary)
		}
	}
	if len(entries) > 0 {
		sum.AverageAnnual = sum.TotalAnnual.Div(decimal.NewFromInt(int64(len(entries)))).Round(2)
	}
	return sum
}
