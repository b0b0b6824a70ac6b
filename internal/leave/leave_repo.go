package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	UserID string
	Status string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveListItem, error)
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	GetBalance(ctx context.Context, userID string) (Balance, error)
	DebitBalance(ctx context.Context, userID, leaveType string, days int) (bool, error)
	TransitionStatus(ctx context.Context, l *LeaveRequest) (bool, error)
	CountByStatusAndType(ctx context.Context, userID string) ([]StatusTypeCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]LeaveListItem, error) {
	var items []LeaveListItem
	q := r.db.WithContext(ctx).
		Table("leave_requests AS l").
		Select("l.*, COALESCE(p.full_name, '') AS full_name").
		Joins("LEFT JOIN profiles p ON p.user_id = l.user_id")

	if filter.UserID != "" {
		q = q.Where("l.user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("l.status = ?", filter.Status)
	}

	err := q.Order("l.created_at DESC").Scan(&items).Error
	return items, err
}

// HasOverlappingPeriod looks at pending and approved requests only.
func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

type balanceRow struct {
	RemainingAnnualLeave int
	RemainingSickLeave   int
}

func (r *repository) GetBalance(ctx context.Context, userID string) (Balance, error) {
	var row balanceRow
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("remaining_annual_leave, remaining_sick_leave").
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return Balance{}, err
	}
	return Balance{Annual: row.RemainingAnnualLeave, Sick: row.RemainingSickLeave}, nil
}

// DebitBalance subtracts days only while the counter still covers them.
// It reports false when no row was changed.
func (r *repository) DebitBalance(ctx context.Context, userID, leaveType string, days int) (bool, error) {
	column := balanceColumn(leaveType)
	if column == "" {
		return true, nil
	}

	res := r.db.WithContext(ctx).
		Table("profiles").
		Where("user_id = ?", userID).
		Where(column+" >= ?", days).
		UpdateColumn(column, gorm.Expr(column+" - ?", days))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// TransitionStatus writes the review outcome if the row is still pending.
func (r *repository) TransitionStatus(ctx context.Context, l *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"status":           l.Status,
			"reviewed_by":      l.ReviewedBy,
			"reviewed_at":      l.ReviewedAt,
			"rejection_reason": l.RejectionReason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) CountByStatusAndType(ctx context.Context, userID string) ([]StatusTypeCount, error) {
	var rows []StatusTypeCount
	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("status, leave_type, COUNT(*) AS count")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Group("status, leave_type").Scan(&rows).Error
	return rows, err
}

func balanceColumn(leaveType string) string {
	switch leaveType {
	case TypeAnnual:
		return "remaining_annual_leave"
	case TypeSick:
		return "remaining_sick_leave"
	default:
		return ""
	}
}
