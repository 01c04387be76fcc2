package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// Uniqueness on (user, course) backs the idempotent issuance path.
type Certificate struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	CourseID         uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	VerificationCode string    `json:"verification_code" gorm:"unique"`
	FinalGrade       float64   `json:"final_grade"` // frozen at issuance time
	IssuedAt         time.Time `json:"issued_at"`
	IsDeleted        bool      `gorm:"default:false"`
}
