package profile

import "github.com/shopspring/decimal"

type CreateProfileRequest struct {
	FullName   string           `json:"full_name" binding:"required,max=150"`
	Email      string           `json:"email" binding:"required,email"`
	Password   string           `json:"password" binding:"required,min=8"`
	Phone      *string          `json:"phone" binding:"omitempty,max=30"`
	Department *string          `json:"department" binding:"omitempty,max=100"`
	Position   *string          `json:"position" binding:"omitempty,max=100"`
	Salary     *decimal.Decimal `json:"salary"`
	JoinDate   *string          `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProfileRequest is the HR edit. Nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName             *string          `json:"full_name" binding:"omitempty,min=1,max=150"`
	Phone                *string          `json:"phone" binding:"omitempty,max=30"`
	Department           *string          `json:"department" binding:"omitempty,max=100"`
	Position             *string          `json:"position" binding:"omitempty,max=100"`
	Status               *string          `json:"status" binding:"omitempty,oneof=active inactive"`
	Salary               *decimal.Decimal `json:"salary"`
	JoinDate             *string          `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
	RemainingAnnualLeave *int             `json:"remaining_annual_leave"`
	RemainingSickLeave   *int             `json:"remaining_sick_leave"`
	AvatarURL            *string          `json:"avatar_url" binding:"omitempty,url"`
}

// UpdateMeRequest is what employees may change on their own profile.
type UpdateMeRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,min=1,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type ListQuery struct {
	Department string
	Status     string
	Search     string
}

type ProfileResponse struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"user_id"`
	FullName             string           `json:"full_name"`
	Email                string           `json:"email"`
	Phone                *string          `json:"phone"`
	Department           *string          `json:"department"`
	Position             *string          `json:"position"`
	Status               string           `json:"status"`
	Salary               *decimal.Decimal `json:"salary"`
	JoinDate             *string          `json:"join_date"`
	RemainingAnnualLeave int              `json:"remaining_annual_leave"`
	RemainingSickLeave   int              `json:"remaining_sick_leave"`
	AvatarURL            *string          `json:"avatar_url"`
	CreatedAt            string           `json:"created_at"`
	UpdatedAt            string           `json:"updated_at"`
}

type LeaveBalanceResponse struct {
	UserID               string `json:"user_id"`
	RemainingAnnualLeave int    `json:"remaining_annual_leave"`
	RemainingSickLeave   int    `json:"remaining_sick_leave"`
	AnnualCap            int    `json:"annual_cap"`
	SickCap              int    `json:"sick_cap"`
}
