package events

const AttendanceRecordedTopic = "hr.attendance.recorded.v1"

const (
	AttendanceCheckedIn  = "attendance.checked_in"
	AttendanceCheckedOut = "attendance.checked_out"
	AttendanceCorrected  = "attendance.corrected"
)

type AttendanceRecordedEvent struct {
	Base
	AttendanceID string `json:"attendance_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	WorkMinutes  *int   `json:"work_minutes,omitempty"`
}
