package models

import (
	"regexp"
	"time"

	"github.com/lib/pq"
)

// Role is the closed set of participant roles. CanChat is the single
// authority on chat eligibility; admission checks build on it, so an
// unexpected role can never slip through as a chat participant.
type Role string

const (
	RoleLecturer Role = "lecturer"
	RoleClassRep Role = "class_rep"
	RoleOther    Role = "other"
)

// CanChat reports whether the role is eligible for the chat feature at all.
func (r Role) CanChat() bool {
	return r == RoleLecturer || r == RoleClassRep
}

// matricPattern matches matric numbers of the form "ABC/12/3456".
var matricPattern = regexp.MustCompile(`^[A-Z]{3}/[0-9]{2}/[0-9]{4}$`)

// ValidMatricNumber reports whether s is a well-formed matric number.
func ValidMatricNumber(s string) bool {
	return matricPattern.MatchString(s)
}

// User represents an account in the system. Lecturers are identified by
// email, students by matric number; the two are mutually exclusive.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Email is set for lecturers only.
	Email *string `gorm:"uniqueIndex" json:"email,omitempty"`
	// MatricNumber is set for students only.
	MatricNumber *string `gorm:"uniqueIndex" json:"matric_number,omitempty"`
	// Level is the student's current level (100-500). Nil for lecturers.
	Level *int `json:"level,omitempty"`
	// Role determines chat eligibility; class reps are students carrying
	// the class-rep designation.
	Role         Role   `gorm:"type:text;not null" json:"role"`
	PasswordHash string `gorm:"not null" json:"-"`
	// CourseCodes lists the courses the user teaches or represents.
	CourseCodes pq.StringArray `gorm:"type:text[]" json:"course_codes,omitempty"`

	DateJoined time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// Login returns the identifier the user signs in with.
func (u *User) Login() string {
	if u.Email != nil {
		return *u.Email
	}
	if u.MatricNumber != nil {
		return *u.MatricNumber
	}
	return ""
}
