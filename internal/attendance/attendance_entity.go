package attendance

import "time"

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
)

type Attendance struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date,priority:1"`
	Date        time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_user_date,priority:2"`
	CheckIn     *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut    *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:present"`
	WorkMinutes *int       `gorm:"column:work_minutes"`
	Notes       *string    `gorm:"column:notes;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type AttendanceListItem struct {
	Attendance `gorm:"embedded"`
	FullName   string
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}
