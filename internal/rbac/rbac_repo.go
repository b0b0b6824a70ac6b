package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRole(ctx context.Context, userID string) (string, error)
	UpsertRole(ctx context.Context, userID, role string) error
	DeleteByUserID(ctx context.Context, userID string) error
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

func (r *repository) FindRole(ctx context.Context, userID string) (string, error) {
	var row UserRole
	err := r.db.WithContext(ctx).
		Select("role").
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		return "", err
	}
	return row.Role, nil
}

func (r *repository) UpsertRole(ctx context.Context, userID, role string) error {
	row := UserRole{UserID: userID, Role: role}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *repository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&UserRole{}).Error
}

func (r *repository) ProfileExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("profiles").
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
