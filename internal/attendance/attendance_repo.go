package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	UserID string
	From   time.Time
	To     time.Time // exclusive
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	MarkCheckOut(ctx context.Context, id string, at time.Time, workMinutes int, notes *string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceListItem, error)
	Upsert(ctx context.Context, a *Attendance) error
	ProfileExists(ctx context.Context, userID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkCheckOut only touches rows that have not been checked out yet.
func (r *repository) MarkCheckOut(ctx context.Context, id string, at time.Time, workMinutes int, notes *string) (bool, error) {
	fields := map[string]any{
		"check_out":    at,
		"work_minutes": workMinutes,
	}
	if notes != nil {
		fields["notes"] = *notes
	}

	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ? AND check_out IS NULL", id).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]AttendanceListItem, error) {
	var items []AttendanceListItem
	q := r.db.WithContext(ctx).
		Table("attendance AS a").
		Select("a.*, COALESCE(p.full_name, '') AS full_name").
		Joins("LEFT JOIN profiles p ON p.user_id = a.user_id")

	if filter.UserID != "" {
		q = q.Where("a.user_id = ?", filter.UserID)
	}
	if !filter.From.IsZero() {
		q = q.Where("a.date >= ?", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		q = q.Where("a.date < ?", filter.To.Format("2006-01-02"))
	}

	err := q.Order("a.date DESC, a.check_in DESC").Scan(&items).Error
	return items, err
}

// Upsert replaces the (user_id, date) record. a is refreshed from the stored
// row, so an existing record keeps its id.
func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"check_in", "check_out", "status", "work_minutes", "notes", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(a).Error
}

func (r *repository) ProfileExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("profiles").
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
