package dto

import "github.com/yigit/atauni/internal/app/models"

// RegisterStudentRequest represents a student self-registration
type RegisterStudentRequest struct {
	TCNo       string `json:"tc_no" binding:"required,numeric,max=11"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Department string `json:"department" binding:"required"`
	ClassLevel string `json:"class_level" binding:"required,oneof=1 2 3 4"`
	Password   string `json:"password" binding:"required,min=6"`
}

// UpdateStudentRequest represents a partial administrative student update
type UpdateStudentRequest struct {
	FirstName  *string               `json:"first_name" binding:"omitempty,min=1"`
	LastName   *string               `json:"last_name" binding:"omitempty,min=1"`
	Email      *string               `json:"email" binding:"omitempty,email"`
	Phone      *string               `json:"phone"`
	Department *string               `json:"department" binding:"omitempty,min=1"`
	ClassLevel *string               `json:"class_level" binding:"omitempty,oneof=1 2 3 4"`
	Status     *models.StudentStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// ToPatch converts the request into a model patch
func (r *UpdateStudentRequest) ToPatch() models.StudentPatch {
	return models.StudentPatch{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		ClassLevel: r.ClassLevel,
		Status:     r.Status,
	}
}
