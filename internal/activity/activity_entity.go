package activity

import "time"

type Activity struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EventID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_activities_event"`
	EventType  string    `gorm:"type:varchar(100);not null"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_activities_user_time,priority:1"`
	ActorID    string    `gorm:"type:uuid"`
	Message    string    `gorm:"type:text;not null"`
	OccurredAt time.Time `gorm:"not null;index:idx_activities_user_time,priority:2,sort:desc"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Activity) TableName() string {
	return "activities"
}

// FeedItem is an activity joined with the subject's display name.
type FeedItem struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	FullName   string    `json:"full_name"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
