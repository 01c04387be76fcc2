package assessment

import (
	"time"

	courseModels "learnly/models/course"

	"gorm.io/gorm"
)

// RecalculateProgress rederives an enrollment's completion percentage from
// completed-lesson count over total-lesson count and moves its status
// along ENROLLED → IN_PROGRESS → COMPLETED.
func RecalculateProgress(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, error) {
	var totalLessons int64
	if err := db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons).Error; err != nil {
		return nil, err
	}

	var completedLessons int64
	if err := db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&completedLessons).Error; err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, err
	}

	enrollment.CompletedLessons = int(completedLessons)
	enrollment.TotalLessons = int(totalLessons)
	enrollment.Progress = 0
	if totalLessons > 0 {
		enrollment.Progress = float64(completedLessons) / float64(totalLessons) * 100
	}

	if enrollment.Progress >= 100 && totalLessons > 0 {
		enrollment.Status = courseModels.EnrollmentCompleted
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else if enrollment.Progress > 0 {
		enrollment.Status = courseModels.EnrollmentInProgress
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}
