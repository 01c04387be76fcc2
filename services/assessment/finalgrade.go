package assessment

import (
	"errors"

	courseModels "learnly/models/course"

	"gorm.io/gorm"
)

// ComputeFinalGrade averages a student's graded assessment scores across
// all of a course's modules (plus legacy course-owned assessments). Each
// assessment contributes equally since all are normalized to the same
// point budget. Returns nil while any required assessment lacks a graded
// submission; that is an expected incomplete state, not an error.
func ComputeFinalGrade(db *gorm.DB, userID, courseID uint) (*float64, error) {
	assessments, err := courseAssessments(db, courseID)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, nil
	}

	sum := 0.0
	for _, a := range assessments {
		var submission courseModels.StudentAssessment
		err := db.Where("user_id = ? AND assessment_id = ? AND is_deleted = ?",
			userID, a.ID, false).First(&submission).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if submission.Status != courseModels.SubmissionGraded || submission.Score == nil {
			return nil, nil
		}
		sum += *submission.Score
	}

	grade := sum / float64(len(assessments))
	return &grade, nil
}

// courseAssessments collects every gradable assessment of a course:
// module-owned plus legacy course-owned. Write-time owner validation keeps
// the two sets from coexisting, so the union never double-counts.
func courseAssessments(db *gorm.DB, courseID uint) ([]courseModels.Assessment, error) {
	var moduleIDs []uint
	if err := db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Pluck("id", &moduleIDs).Error; err != nil {
		return nil, err
	}

	var assessments []courseModels.Assessment
	if len(moduleIDs) > 0 {
		if err := db.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
			Order("id asc").Find(&assessments).Error; err != nil {
			return nil, err
		}
	}

	var legacy []courseModels.Assessment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("id asc").Find(&legacy).Error; err != nil {
		return nil, err
	}

	return append(assessments, legacy...), nil
}
