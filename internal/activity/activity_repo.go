package activity

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	// Insert stores a projected activity. It reports false when the event
	// was already projected.
	Insert(ctx context.Context, a *Activity) (bool, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]FeedItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, a *Activity) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListRecent returns the newest activities. An empty userID lists everyone.
func (r *repository) ListRecent(ctx context.Context, userID string, limit int) ([]FeedItem, error) {
	var items []FeedItem
	q := r.db.WithContext(ctx).
		Table("activities AS a").
		Select("a.id, a.event_type, a.user_id, COALESCE(p.full_name, '') AS full_name, a.message, a.occurred_at").
		Joins("LEFT JOIN profiles p ON p.user_id = a.user_id")
	if userID != "" {
		q = q.Where("a.user_id = ?", userID)
	}
	err := q.Order("a.occurred_at DESC").Limit(limit).Scan(&items).Error
	return items, err
}
