package profile

import (
	"context"

	"gorm.io/gorm"
)

type ListFilter struct {
	Department string
	Status     string
}

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context, filter ListFilter) ([]Profile, error)
	UpdateFields(ctx context.Context, userID string, fields map[string]any) error
	DeleteCascade(ctx context.Context, userID string) error
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Profile, error) {
	var profiles []Profile
	q := r.db.WithContext(ctx).Model(&Profile{})
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("full_name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *repository) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes everything the user owns, then the profile itself.
// Must run inside a transaction.
func (r *repository) DeleteCascade(ctx context.Context, userID string) error {
	db := r.db.WithContext(ctx)
	for _, table := range []string{"attendance", "leave_requests", "activities"} {
		if err := db.Exec("DELETE FROM "+table+" WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
	}

	res := db.Where("user_id = ?", userID).Delete(&Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
