package dto

import "github.com/yigit/atauni/internal/app/models"

// CreateAttendanceRequest represents a new attendance entry.
// A zero total is rejected by the service, not by binding.
type CreateAttendanceRequest struct {
	StudentID     string `json:"student_id" binding:"required"`
	CourseName    string `json:"course_name" binding:"required"`
	TotalHours    int    `json:"total_hours" binding:"min=0"`
	AttendedHours int    `json:"attended_hours" binding:"min=0"`
}

// UpdateAttendanceRequest represents a partial attendance update
type UpdateAttendanceRequest struct {
	CourseName    *string `json:"course_name" binding:"omitempty,min=1"`
	TotalHours    *int    `json:"total_hours" binding:"omitempty,min=0"`
	AttendedHours *int    `json:"attended_hours" binding:"omitempty,min=0"`
}

// ToPatch converts the request into a model patch
func (r *UpdateAttendanceRequest) ToPatch() models.AttendancePatch {
	return models.AttendancePatch{
		CourseName:    r.CourseName,
		TotalHours:    r.TotalHours,
		AttendedHours: r.AttendedHours,
	}
}
