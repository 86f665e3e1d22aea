package models

// Role defines the staff user role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWriter  Role = "writer"
	RoleSupport Role = "support"
)

// Valid reports whether r is one of the known staff roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWriter, RoleSupport:
		return true
	}
	return false
}

// StudentStatus defines the approval state of a student account
type StudentStatus string

const (
	StatusPending  StudentStatus = "pending"
	StatusApproved StudentStatus = "approved"
	StatusRejected StudentStatus = "rejected"
)

// Valid reports whether s is a known approval state.
func (s StudentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
