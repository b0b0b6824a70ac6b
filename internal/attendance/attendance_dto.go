package attendance

type CheckInRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

// ManualAttendanceRequest is an HR correction. Times are HH:MM wall clock in
// the configured zone.
type ManualAttendanceRequest struct {
	UserID   string  `json:"user_id" binding:"required,uuid"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	CheckIn  *string `json:"check_in" binding:"omitempty,datetime=15:04"`
	CheckOut *string `json:"check_out" binding:"omitempty,datetime=15:04"`
	Status   *string `json:"status" binding:"omitempty,oneof=present late absent half-day"`
	Notes    *string `json:"notes" binding:"omitempty,max=500"`
}

type ListQuery struct {
	Month  string
	UserID string
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	FullName    string  `json:"full_name,omitempty"`
	Date        string  `json:"date"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	Status      string  `json:"status"`
	WorkMinutes *int    `json:"work_minutes"`
	WorkHours   string  `json:"work_hours,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}
