package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID         string        `json:"id" db:"id"`
	StudentNo  string        `json:"student_no" db:"student_no" example:"20250001"` // {year}{4-digit sequence}
	TCNo       string        `json:"tc_no" db:"tc_no" example:"12345678901"`
	FirstName  string        `json:"first_name" db:"first_name" example:"Ayşe"`
	LastName   string        `json:"last_name" db:"last_name" example:"Yılmaz"`
	Email      string        `json:"email" db:"email"`
	Phone      string        `json:"phone" db:"phone"`
	Department string        `json:"department" db:"department" example:"Bilgisayar Programcılığı"`
	ClassLevel string        `json:"class_level" db:"class_level" example:"1"`
	Password   string        `json:"-" db:"password"`
	Status     StudentStatus `json:"status" db:"status" example:"pending"`
	GPA        float64       `json:"gpa" db:"gpa" example:"3.57"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy *string       `json:"approved_by,omitempty" db:"approved_by"`
}

// CanLogin reports whether the account has been approved
func (s *Student) CanLogin() bool {
	return s.Status == StatusApproved
}

// StudentPatch carries the optional fields of an administrative student update.
// Identifiers, the password and the derived gpa are not patchable.
type StudentPatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Department *string
	ClassLevel *string
	Status     *StudentStatus
}

// Empty reports whether no field is set.
func (p StudentPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.Department == nil && p.ClassLevel == nil && p.Status == nil
}

// Apply overwrites the fields of s that are set in the patch.
func (p StudentPatch) Apply(s *Student) {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Department != nil {
		s.Department = *p.Department
	}
	if p.ClassLevel != nil {
		s.ClassLevel = *p.ClassLevel
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
}
