package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

var countedAsPresent = []string{"present", "late"}

// ProfileSnapshot is the slice of a profile the employee dashboard shows.
type ProfileSnapshot struct {
	RemainingAnnualLeave int
	RemainingSickLeave   int
	Salary               *int64
}

type AttendanceTally struct {
	Total   int64
	Present int64
}

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountProfiles(ctx context.Context) (int64, error)
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)
	// CountPendingLeaves counts pending requests. An empty userID counts everyone.
	CountPendingLeaves(ctx context.Context, userID string) (int64, error)
	SumAnnualSalary(ctx context.Context) (int64, error)
	FindProfileSnapshot(ctx context.Context, userID string) (*ProfileSnapshot, error)
	TallyAttendance(ctx context.Context, userID string) (AttendanceTally, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("profiles").Count(&n).Error
	return n, err
}

func (r *repository) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("attendance").
		Where("date = ? AND status IN ?", date.Format("2006-01-02"), countedAsPresent).
		Count(&n).Error
	return n, err
}

func (r *repository) CountPendingLeaves(ctx context.Context, userID string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("status = ?", "pending")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *repository) SumAnnualSalary(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("COALESCE(SUM(salary), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *repository) FindProfileSnapshot(ctx context.Context, userID string) (*ProfileSnapshot, error) {
	var snap ProfileSnapshot
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("remaining_annual_leave, remaining_sick_leave, salary").
		Where("user_id = ?", userID).
		Take(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *repository) TallyAttendance(ctx context.Context, userID string) (AttendanceTally, error) {
	var t AttendanceTally
	err := r.db.WithContext(ctx).
		Table("attendance").
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status IN ?) AS present", countedAsPresent).
		Where("user_id = ?", userID).
		Scan(&t).Error
	return t, err
}
