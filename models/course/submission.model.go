package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentAssessment statuses
const (
	SubmissionSubmitted = "SUBMITTED" // awaiting manual grading
	SubmissionGraded    = "GRADED"    // terminal
)

// StudentAssessment represents a student's submission for one assessment.
// At most one row exists per (user, assessment); resubmission is rejected.
type StudentAssessment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_assessment"`
	AssessmentID uint       `json:"assessment_id" gorm:"not null;uniqueIndex:idx_user_assessment"`
	Status       string     `json:"status" gorm:"default:'SUBMITTED'"` // SUBMITTED, GRADED
	Score        *float64   `json:"score"`                             // 0-10, null until graded
	SubmittedAt  time.Time  `json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at"`
	IsDeleted    bool       `gorm:"default:false"`
}

// StudentAnswer holds one submitted answer and its grading state. A null
// AwardedPoints on a non-auto-graded row marks the answer as pending
// manual grading.
type StudentAnswer struct {
	gorm.Model
	StudentAssessmentID uint           `json:"student_assessment_id" gorm:"index;not null"`
	QuestionID          uint           `json:"question_id" gorm:"index;not null"`
	Answer              datatypes.JSON `json:"answer"`
	AwardedPoints       *float64       `json:"awarded_points"`
	IsAutoGraded        bool           `json:"is_auto_graded" gorm:"default:false"`
	IsDeleted           bool           `gorm:"default:false"`
}
