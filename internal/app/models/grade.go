package models

import "time"

// Grade defines a course grade entry based on the 'student_grades' table
type Grade struct {
	ID         string    `json:"id" db:"id"`
	StudentID  string    `json:"student_id" db:"student_id"`
	CourseName string    `json:"course_name" db:"course_name" example:"Veri Yapıları"`
	CourseCode string    `json:"course_code" db:"course_code" example:"BP201"`
	Credit     int       `json:"credit" db:"credit" example:"4"`
	Midterm    *float64  `json:"midterm,omitempty" db:"midterm"`
	Final      *float64  `json:"final,omitempty" db:"final"`
	Grade      *string   `json:"grade,omitempty" db:"grade" example:"BA"` // AA..FF, nil while ungraded
	Semester   string    `json:"semester" db:"semester" example:"Güz 2024"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// GradePatch carries the optional fields of a grade update. The owning student is fixed.
type GradePatch struct {
	CourseName *string
	CourseCode *string
	Credit     *int
	Midterm    *float64
	Final      *float64
	Grade      *string
	Semester   *string
}

// Apply overwrites the fields of g that are set in the patch.
func (p GradePatch) Apply(g *Grade) {
	if p.CourseName != nil {
		g.CourseName = *p.CourseName
	}
	if p.CourseCode != nil {
		g.CourseCode = *p.CourseCode
	}
	if p.Credit != nil {
		g.Credit = *p.Credit
	}
	if p.Midterm != nil {
		g.Midterm = p.Midterm
	}
	if p.Final != nil {
		g.Final = p.Final
	}
	if p.Grade != nil {
		g.Grade = p.Grade
	}
	if p.Semester != nil {
		g.Semester = *p.Semester
	}
}
