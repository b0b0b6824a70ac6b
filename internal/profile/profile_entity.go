package profile

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Profile struct {
	ID                   string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID               string     `gorm:"type:uuid;not null;uniqueIndex:uq_profiles_user"`
	FullName             string     `gorm:"type:varchar(150);not null"`
	Email                string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_profiles_email"`
	Phone                *string    `gorm:"type:varchar(30)"`
	Department           *string    `gorm:"type:varchar(100);index"`
	Position             *string    `gorm:"type:varchar(100)"`
	Status               string     `gorm:"type:varchar(20);not null;default:active"`
	Salary               *int64     // annual, minor units
	JoinDate             *time.Time `gorm:"type:date"`
	RemainingAnnualLeave int        `gorm:"not null;default:20;check:chk_profiles_annual_leave,remaining_annual_leave >= 0"`
	RemainingSickLeave   int        `gorm:"not null;default:10;check:chk_profiles_sick_leave,remaining_sick_leave >= 0"`
	AvatarURL            *string    `gorm:"type:text"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// LeaveCaps are the policy maximums for the two leave counters.
type LeaveCaps struct {
	Annual int
	Sick   int
}

var DefaultLeaveCaps = LeaveCaps{Annual: 20, Sick: 10}
