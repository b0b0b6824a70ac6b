package rbac

import "time"

type UserRole struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_user_roles_user"`
	Role      string    `gorm:"type:varchar(20);not null;default:employee"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
