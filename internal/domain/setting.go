package domain

// AttendanceTimes is the single settings row the schedulers read. Values are
// wall-clock strings ("HH:MM" or "HH:MM:SS").
type AttendanceTimes struct {
	ID           int    `db:"id" json:"-"`
	CheckInTime  string `db:"check_in_time" json:"check_in_time"`
	CheckOutTime string `db:"check_out_time" json:"check_out_time"`
}
