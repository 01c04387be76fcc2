package assessment

import (
	"errors"
	"time"

	courseModels "learnly/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueCertificate issues a certificate once the student is eligible:
// 100% course progress, every assessment graded, and a final grade at or
// above the course's passing score. Issuance is idempotent — an existing
// certificate is returned unchanged, including under concurrent requests
// racing past the existence check (the unique (user, course) index decides
// the winner and the loser returns the winner's row).
func IssueCertificate(db *gorm.DB, userID, courseID uint) (*courseModels.Certificate, error) {
	var existing courseModels.Certificate
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, err
	}

	progress := 0.0
	var enrollment courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&enrollment).Error
	if err == nil {
		progress = enrollment.Progress
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if progress < 100 {
		return nil, newError(KindEligibility, CodeAssessmentsNotCompleted,
			"Course is not fully completed yet.",
			map[string]interface{}{"progress": progress})
	}

	grade, err := ComputeFinalGrade(db, userID, courseID)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, newError(KindEligibility, CodeAssessmentsNotCompleted,
			"Not every assessment has been graded yet.",
			map[string]interface{}{"course_id": courseID})
	}
	if *grade < course.PassingScore {
		return nil, newError(KindEligibility, CodeFinalGradeBelowPassingScore,
			"Final grade is below the course's passing score.",
			map[string]interface{}{"final_grade": *grade, "passing_score": course.PassingScore})
	}

	certificate := courseModels.Certificate{
		UserID:           userID,
		CourseID:         courseID,
		VerificationCode: uuid.NewString(),
		FinalGrade:       *grade,
		IssuedAt:         time.Now(),
	}
	if err := db.Create(&certificate).Error; err != nil {
		// Lost a race: a concurrent request inserted first. Return its row.
		var winner courseModels.Certificate
		if e := db.Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&winner).Error; e == nil {
			return &winner, nil
		}
		return nil, err
	}
	return &certificate, nil
}
