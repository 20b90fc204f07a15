package model

import "gorm.io/gorm"

// Roles known to the system. Every user carries exactly one.
const (
	RoleClinic  = "clinic"
	RoleFaculty = "faculty"
	RoleStudent = "student"
	RoleHOD     = "hod"
)

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // clinic/faculty/student/hod
	Name         string `json:"name"`
}
