package models

import (
	"time"
)

// User defines the staff user model based on the 'users' table
type User struct {
	ID        string    `json:"id" db:"id" example:"3f1c2a8e-5d7b-4c11-9a0e-1b2c3d4e5f60"`
	Username  string    `json:"username" db:"username" example:"admin"`
	Email     string    `json:"email" db:"email" example:"admin@ata.edu.tr"`
	FullName  string    `json:"full_name" db:"full_name" example:"System Administrator"`
	Role      Role      `json:"role" db:"role" example:"admin"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at" db:"created_at" example:"2025-01-01T10:00:00Z"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch carries the optional fields of a staff user update.
// Password holds an already hashed value when set.
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	Role     *Role
	Password *string
}

// Apply overwrites the fields of u that are set in the patch.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}
