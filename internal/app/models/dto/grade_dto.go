package dto

import "github.com/yigit/atauni/internal/app/models"

// CreateGradeRequest represents a new grade entry
type CreateGradeRequest struct {
	StudentID  string   `json:"student_id" binding:"required"`
	CourseName string   `json:"course_name" binding:"required"`
	CourseCode string   `json:"course_code" binding:"required"`
	Credit     int      `json:"credit" binding:"required,gt=0"`
	Midterm    *float64 `json:"midterm" binding:"omitempty,gte=0,lte=100"`
	Final      *float64 `json:"final" binding:"omitempty,gte=0,lte=100"`
	Grade      *string  `json:"grade" binding:"omitempty,oneof=AA BA BB CB CC DC DD FD FF"`
	Semester   string   `json:"semester" binding:"required"`
}

// UpdateGradeRequest represents a partial grade update
type UpdateGradeRequest struct {
	CourseName *string  `json:"course_name" binding:"omitempty,min=1"`
	CourseCode *string  `json:"course_code" binding:"omitempty,min=1"`
	Credit     *int     `json:"credit" binding:"omitempty,gt=0"`
	Midterm    *float64 `json:"midterm" binding:"omitempty,gte=0,lte=100"`
	Final      *float64 `json:"final" binding:"omitempty,gte=0,lte=100"`
	Grade      *string  `json:"grade" binding:"omitempty,oneof=AA BA BB CB CC DC DD FD FF"`
	Semester   *string  `json:"semester" binding:"omitempty,min=1"`
}

// ToPatch converts the request into a model patch
func (r *UpdateGradeRequest) ToPatch() models.GradePatch {
	return models.GradePatch{
		CourseName: r.CourseName,
		CourseCode: r.CourseCode,
		Credit:     r.Credit,
		Midterm:    r.Midterm,
		Final:      r.Final,
		Grade:      r.Grade,
		Semester:   r.Semester,
	}
}
