package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypeUnpaid    = "unpaid"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
)

type LeaveRequest struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`
	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	Days      int       `gorm:"not null"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:pending;index:idx_leave_requests_status"`
	ReviewedBy      *string    `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveListItem is a request joined with the requester's name.
type LeaveListItem struct {
	LeaveRequest `gorm:"embedded"`
	FullName     string
}

// StatusTypeCount is one cell of the leave stats grid.
type StatusTypeCount struct {
	Status    string
	LeaveType string
	Count     int64
}
