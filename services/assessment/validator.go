package assessment

import (
	"errors"

	courseModels "learnly/models/course"

	"gorm.io/gorm"
)

// ValidateCourseForSubmission checks the structural invariants required to
// move a course from draft to pending approval: every module carries
// exactly one assessment, and every assessment (module-owned or legacy
// course-owned) has at least one question. Both failures block the whole
// submission; modules missing an assessment are reported first.
func ValidateCourseForSubmission(db *gorm.DB, courseID uint) error {
	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return err
	}

	var missingAssessment []map[string]interface{}
	var emptyAssessments []map[string]interface{}

	for _, mod := range modules {
		var a courseModels.Assessment
		err := db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			missingAssessment = append(missingAssessment, map[string]interface{}{
				"module_id":    mod.ID,
				"module_title": mod.Title,
			})
			continue
		}
		if err != nil {
			return err
		}

		count, err := countQuestions(db, a.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			emptyAssessments = append(emptyAssessments, map[string]interface{}{
				"module_id":     mod.ID,
				"module_title":  mod.Title,
				"assessment_id": a.ID,
			})
		}
	}

	// Legacy course-owned assessments must also carry questions.
	var courseAssessments []courseModels.Assessment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Find(&courseAssessments).Error; err != nil {
		return err
	}
	for _, a := range courseAssessments {
		count, err := countQuestions(db, a.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			emptyAssessments = append(emptyAssessments, map[string]interface{}{
				"assessment_id": a.ID,
			})
		}
	}

	if len(missingAssessment) > 0 {
		return newError(KindStructural, CodeModulesWithoutAssessment,
			"Every module needs an assessment before the course can be submitted.",
			map[string]interface{}{"modules": missingAssessment})
	}
	if len(emptyAssessments) > 0 {
		return newError(KindStructural, CodeAssessmentsWithoutQuestions,
			"Every assessment needs at least one question before the course can be submitted.",
			map[string]interface{}{"assessments": emptyAssessments})
	}
	return nil
}

// GuardModuleDelete rejects deleting a module that owns an assessment:
// removing it would silently orphan the assessment's grading contribution.
func GuardModuleDelete(db *gorm.DB, moduleID uint) error {
	var a courseModels.Assessment
	err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return newError(KindStateConflict, CodeModuleHasAssessment,
		"Module has an assessment; delete the assessment first.",
		map[string]interface{}{"module_id": moduleID, "assessment_id": a.ID})
}

// ValidateAssessmentOwner enforces the owner exclusivity invariant on
// every assessment mutation: exactly one of course/module is set, a module
// owns at most one assessment, and a course never mixes module-owned and
// course-owned assessments.
func ValidateAssessmentOwner(db *gorm.DB, a *courseModels.Assessment) error {
	owner, ok := a.Owner()
	if !ok {
		return newError(KindStructural, CodeAssessmentOwnerConflict,
			"An assessment belongs to exactly one course or one module.", nil)
	}

	if owner.Kind == courseModels.OwnedByModule {
		var count int64
		if err := db.Model(&courseModels.Assessment{}).
			Where("module_id = ? AND id <> ? AND is_deleted = ?", owner.ID, a.ID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return newError(KindStateConflict, CodeModuleAlreadyHasAssessment,
				"Module already has an assessment.",
				map[string]interface{}{"module_id": owner.ID})
		}

		var mod courseModels.Module
		if err := db.Where("id = ? AND is_deleted = ?", owner.ID, false).First(&mod).Error; err != nil {
			return err
		}
		if err := db.Model(&courseModels.Assessment{}).
			Where("course_id = ? AND is_deleted = ?", mod.CourseID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return newError(KindStructural, CodeAssessmentOwnerConflict,
				"Course already uses legacy course-level assessments.",
				map[string]interface{}{"course_id": mod.CourseID})
		}
		return nil
	}

	// Legacy course owner: reject when any of the course's modules already
	// owns an assessment.
	var count int64
	if err := db.Model(&courseModels.Assessment{}).
		Joins("JOIN modules ON modules.id = assessments.module_id").
		Where("modules.course_id = ? AND assessments.is_deleted = ?", owner.ID, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return newError(KindStructural, CodeAssessmentOwnerConflict,
			"Course already uses module-level assessments.",
			map[string]interface{}{"course_id": owner.ID})
	}
	return nil
}

func countQuestions(db *gorm.DB, assessmentID uint) (int64, error) {
	var count int64
	err := db.Model(&courseModels.Question{}).
		Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Count(&count).Error
	return count, err
}
