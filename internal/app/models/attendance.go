package models

import "time"

// Attendance defines a course attendance entry based on the 'student_attendance' table.
// AbsencePercentage is derived from the two hour counts and never supplied by clients.
type Attendance struct {
	ID                string    `json:"id" db:"id"`
	StudentID         string    `json:"student_id" db:"student_id"`
	CourseName        string    `json:"course_name" db:"course_name"`
	TotalHours        int       `json:"total_hours" db:"total_hours" example:"56"`
	AttendedHours     int       `json:"attended_hours" db:"attended_hours" example:"52"`
	AbsencePercentage float64   `json:"absence_percentage" db:"absence_percentage" example:"7.14"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// AttendancePatch carries the optional fields of an attendance update.
type AttendancePatch struct {
	CourseName    *string
	TotalHours    *int
	AttendedHours *int
}

// Apply overwrites the fields of a that are set in the patch.
func (p AttendancePatch) Apply(a *Attendance) {
	if p.CourseName != nil {
		a.CourseName = *p.CourseName
	}
	if p.TotalHours != nil {
		a.TotalHours = *p.TotalHours
	}
	if p.AttendedHours != nil {
		a.AttendedHours = *p.AttendedHours
	}
}
