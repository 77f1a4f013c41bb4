package attendance

import "time"

// Attendance ties one Student to one Class on one calendar date.
// At most one record may exist per (student, class, day); the store enforces
// this at write time so concurrent marking cannot race past the check.
type Attendance struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	ClassID   string    `json:"classId"`
	Date      time.Time `json:"date"` // calendar day, UTC midnight
	Present   bool      `json:"present"`
	MarkedAt  time.Time `json:"markedAt"`
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
